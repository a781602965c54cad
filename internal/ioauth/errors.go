package ioauth

import (
	"fmt"

	"github.com/leafdex/leafdex/pkg/leafdex"
)

// Both failure shapes wrap leafdex.ErrUnauthorized: an unverifiable
// credential and an unreachable verifier deny access the same way.

func InvalidTokenError(err error) error {
	if err == nil {
		return fmt.Errorf("%w: token rejected", leafdex.ErrUnauthorized)
	}
	return fmt.Errorf("%w: token rejected: %v", leafdex.ErrUnauthorized, err)
}

func VerifyError(err error) error {
	if err == nil {
		return fmt.Errorf("%w: verifier unavailable", leafdex.ErrUnauthorized)
	}
	return fmt.Errorf("%w: verifier unavailable: %v",
		leafdex.ErrUnauthorized, err)
}
