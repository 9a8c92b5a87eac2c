package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// referenceFunc generates DAS reference codes (override for deterministic tests).
var referenceFunc = NewReferenceCode

// SetReferenceFunc overrides the DAS reference generator (use only in tests).
func SetReferenceFunc(f func() string) { referenceFunc = f }
