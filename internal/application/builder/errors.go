package builder

import (
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

// ErrSessionClosed is returned by mutations on a session that was evicted or
// shut down. Callers reopen the portfolio through the Manager.
var ErrSessionClosed = apperror.NewAppError(apperror.ErrConflict, "Editing session closed", "reopen the portfolio to keep editing", nil)

func invalidMove(kind, value string) error {
	return &portfolio.ValidationError{Fields: []string{kind}, Reason: "unknown " + kind + " " + value}
}
