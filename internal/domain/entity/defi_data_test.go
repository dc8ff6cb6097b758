package entity

import "testing"

func TestNewAddressDefiData(t *testing.T) {
	t.Run("lower-cases the address", func(t *testing.T) {
		data := NewAddressDefiData("0xAbCdEf", SourceZerion, nil, nil)
		if data.Address != "0xabcdef" {
			t.Errorf("expected lower-cased address, got %q", data.Address)
		}
	})

	t.Run("totals from position sum by default", func(t *testing.T) {
		data := NewAddressDefiData("0xabc", SourceDebank, []Position{
			position("a", "ethereum", PositionTypeLending, 100, "USDC"),
			position("b", "polygon", PositionTypeStaking, 50, "MATIC"),
		}, nil)
		if data.TotalValueUSD != 150 {
			t.Errorf("expected total 150, got %v", data.TotalValueUSD)
		}
	})

	t.Run("provider-reported total wins when supplied", func(t *testing.T) {
		reported := 170.0
		data := NewAddressDefiData("0xabc", SourceZerion, []Position{
			position("a", "ethereum", PositionTypeLending, 100, "USDC"),
		}, &reported)
		if data.TotalValueUSD != 170 {
			t.Errorf("expected reported total 170, got %v", data.TotalValueUSD)
		}
	})

	t.Run("merges duplicate exact keys before anything downstream", func(t *testing.T) {
		data := NewAddressDefiData("0xabc", SourceDebank, []Position{
			position("a", "ethereum", PositionTypeLending, 100, "USDC"),
			position("a", "ethereum", PositionTypeLending, 25, "USDC"),
		}, nil)
		if len(data.Positions) != 1 {
			t.Fatalf("expected duplicates merged, got %d positions", len(data.Positions))
		}
		if data.Positions[0].TotalValueUSD != 125 {
			t.Errorf("expected merged value 125, got %v", data.Positions[0].TotalValueUSD)
		}
		if data.TotalValueUSD != 125 {
			t.Errorf("expected dataset total 125, got %v", data.TotalValueUSD)
		}
	})

	t.Run("derives the sorted distinct chain set", func(t *testing.T) {
		data := NewAddressDefiData("0xabc", SourceDebank, []Position{
			position("a", "polygon", PositionTypeLending, 1, "USDC"),
			position("b", "ethereum", PositionTypeStaking, 1, "ETH"),
			position("c", "polygon", PositionTypeFarming, 1, "MATIC"),
		}, nil)
		want := []string{"ethereum", "polygon"}
		if len(data.Chains) != len(want) {
			t.Fatalf("expected chains %v, got %v", want, data.Chains)
		}
		for i := range want {
			if data.Chains[i] != want[i] {
				t.Fatalf("expected chains %v, got %v", want, data.Chains)
			}
		}
	})

	t.Run("sets a timestamp", func(t *testing.T) {
		data := NewAddressDefiData("0xabc", SourceZerion, nil, nil)
		if data.UpdatedAt.IsZero() {
			t.Error("expected UpdatedAt to be set")
		}
	})
}
