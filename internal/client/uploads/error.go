package uploads

import (
	"errors"
	"fmt"

	"github.com/accion2025/buencuidar/internal/common"
	"github.com/accion2025/buencuidar/internal/timex"
)

// ErrorKind classifies a terminal upload failure.
type ErrorKind int

const (
	// ErrAuth: session missing or session check timed out. Terminal and
	// never retried; retrying cannot succeed without user action.
	ErrAuth ErrorKind = iota
	// ErrTransport: both transport legs failed (or timed out).
	ErrTransport
	// ErrPermission: remote access-control rejection. Retried like any
	// transport failure but surfaced distinctly when final.
	ErrPermission
	// ErrPersistence: blob landed but the metadata write failed. The
	// uploaded object is orphaned in storage; that leak is accepted.
	ErrPersistence
	// ErrValidation: bad input (empty or oversized file, unknown type).
	// Terminal, detected before any transport attempt.
	ErrValidation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrAuth:
		return "auth"
	case ErrTransport:
		return "transport"
	case ErrPermission:
		return "permission"
	case ErrPersistence:
		return "persistence"
	case ErrValidation:
		return "validation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single caller-visible failure of a task: the classified kind
// plus the failing step and attempt count for diagnostic display.
// Intermediate attempt failures never surface as Errors, only the final one.
type Error struct {
	Kind    ErrorKind
	Step    Step
	Attempt int
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("upload %s error at %s (attempt %d): %v", e.Kind, e.Step, e.Attempt, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the human-readable summary shown to the user, with the raw
// detail available via Error()/Unwrap() for support.
func (e *Error) UserMessage() string {
	switch {
	case e.Kind == ErrAuth:
		return "Tu sesión expiró. Inicia sesión de nuevo e intenta otra vez."
	case e.Kind == ErrValidation:
		return "El archivo no es válido. Revisa el tamaño y el formato."
	case e.Kind == ErrPermission:
		return "No tienes permiso para subir este archivo."
	case errors.Is(e.Err, timex.ErrDeadlineExceeded):
		return "La subida tardó demasiado. Revisa tu conexión e intenta otra vez."
	default:
		return "No pudimos subir el archivo. Intenta otra vez en unos minutos."
	}
}

// classify maps a raw step failure to its kind.
func classify(step Step, attempt int, err error) *Error {
	kind := ErrTransport
	switch {
	case errors.Is(err, common.ErrPermissionDenied):
		kind = ErrPermission
	case step == StepPersistMetadata:
		kind = ErrPersistence
	case step == StepSessionCheck:
		kind = ErrAuth
	}
	return &Error{Kind: kind, Step: step, Attempt: attempt, Err: err}
}
