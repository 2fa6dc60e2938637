package errors

import (
	stderrors "errors"

	"github.com/vango-dev/client360/pkg/router"
	"github.com/vango-dev/client360/pkg/routepath"
)

// Classify maps a routing error to its coded Error. Errors that already are
// an *Error are returned as is; unrecognized errors get fallback.
func Classify(err error, fallback string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}

	code := fallback
	switch {
	case stderrors.Is(err, routepath.ErrInvalidPath):
		code = "E301"
	case stderrors.Is(err, router.ErrNotFound):
		code = "E300"
	case stderrors.Is(err, router.ErrInvalidPattern):
		code = "E200"
	case stderrors.Is(err, router.ErrDuplicateRouteName):
		code = "E201"
	case stderrors.Is(err, router.ErrUnknownRoute):
		code = "E202"
	case stderrors.Is(err, router.ErrMissingParam):
		code = "E203"
	case stderrors.Is(err, router.ErrNoHistory):
		code = "E302"
	}
	return New(code).Wrap(err)
}
