package utils

import "testing"

func TestFormatUnits(t *testing.T) {
	cases := []struct {
		raw      string
		decimals int
		want     string
	}{
		{"1230000", 6, "1.23"},
		{"1000000000000000000", 18, "1"},
		{"1", 18, "0.000000000000000001"},
		{"123456789123456789123456789", 18, "123456789.123456789123456789"},
		{"0", 6, "0"},
		{"", 6, "0"},
	}
	for _, tc := range cases {
		got, err := FormatUnits(tc.raw, tc.decimals)
		if err != nil {
			t.Fatalf("FormatUnits(%q, %d): unexpected error: %v", tc.raw, tc.decimals, err)
		}
		if got != tc.want {
			t.Errorf("FormatUnits(%q, %d) = %q, want %q", tc.raw, tc.decimals, got, tc.want)
		}
	}

	if _, err := FormatUnits("not-a-number", 6); err == nil {
		t.Error("expected error for malformed raw amount")
	}
}

func TestRawUnits(t *testing.T) {
	cases := []struct {
		amount   float64
		decimals int
		want     string
	}{
		{1.23, 6, "1230000"},
		{1, 18, "1000000000000000000"},
		{0, 6, "0"},
		{0.0000001, 6, "0"}, // below token precision truncates
	}
	for _, tc := range cases {
		if got := RawUnits(tc.amount, tc.decimals); got != tc.want {
			t.Errorf("RawUnits(%v, %d) = %q, want %q", tc.amount, tc.decimals, got, tc.want)
		}
	}
}
