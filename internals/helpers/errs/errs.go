// Package errs carries the error taxonomy shared by the feature services:
// validation, business-rule conflict, missing/stale row, authorization.
package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindAlreadyProcessed
	KindForbidden
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// HTTPStatus: 400 validation/conflict, 404 not-found/already-processed
// (stale client view; refetch instead of retrying), 403 forbidden.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	case KindNotFound, KindAlreadyProcessed:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func Validation(msg string) *Error       { return &Error{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) *Error         { return &Error{Kind: KindConflict, Msg: msg} }
func NotFound(msg string) *Error         { return &Error{Kind: KindNotFound, Msg: msg} }
func AlreadyProcessed(msg string) *Error { return &Error{Kind: KindAlreadyProcessed, Msg: msg} }
func Forbidden(msg string) *Error        { return &Error{Kind: KindForbidden, Msg: msg} }

func kindOf(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsValidation(err error) bool       { return kindOf(err, KindValidation) }
func IsConflict(err error) bool         { return kindOf(err, KindConflict) }
func IsNotFound(err error) bool         { return kindOf(err, KindNotFound) }
func IsAlreadyProcessed(err error) bool { return kindOf(err, KindAlreadyProcessed) }
func IsForbidden(err error) bool        { return kindOf(err, KindForbidden) }
