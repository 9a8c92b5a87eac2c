package calculation

import (
	"errors"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
)

// Logger is a minimal logging interface for the calculation engine.
// The pure calculators never log; only Engine does. The default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// logFailure records a failed operation. Rejected input is a warning since
// it is the caller's to fix; anything else is an error.
func logFailure(l Logger, op string, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		l.Warnf("%s rejected: %v", op, err)
		return
	}
	l.Errorf("%s failed: %v", op, err)
}
