package entity

import (
	"errors"
	"fmt"
)

// ErrConfigurationMissing means a required provider credential is absent.
// It is surfaced before any network call: without credentials no chain could
// succeed, so this is never silently degraded.
var ErrConfigurationMissing = errors.New("required provider credential is missing")

// ErrUnknownSource means the caller asked for a data source this service
// does not know.
var ErrUnknownSource = errors.New("unknown data source")

// ErrInvalidAddress means the supplied wallet address is not a valid
// hex address.
var ErrInvalidAddress = errors.New("invalid wallet address")

// ProviderError reports that one provider call (optionally scoped to a
// single chain) failed after its retry budget was exhausted or returned an
// unparseable body. It is absorbed at the fetch orchestrator boundary as
// zero positions for that chain, never propagated past it.
type ProviderError struct {
	Provider string
	Chain    string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Chain != "" {
		return fmt.Sprintf("provider %s unavailable on chain %s: %s", e.Provider, e.Chain, e.Message)
	}
	return fmt.Sprintf("provider %s unavailable: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }
