package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindPredicatesAndStatus(t *testing.T) {
	cases := []struct {
		err    *Error
		check  func(error) bool
		status int
	}{
		{Validation("bad input"), IsValidation, 400},
		{Conflict("overlap"), IsConflict, 400},
		{NotFound("missing"), IsNotFound, 404},
		{AlreadyProcessed("done"), IsAlreadyProcessed, 404},
		{Forbidden("nope"), IsForbidden, 403},
	}
	for _, tc := range cases {
		if !tc.check(tc.err) {
			t.Errorf("%q: predicate rejected its own kind", tc.err.Error())
		}
		if tc.err.HTTPStatus() != tc.status {
			t.Errorf("%q: status = %d, want %d", tc.err.Error(), tc.err.HTTPStatus(), tc.status)
		}
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("save request: %w", Conflict("overlap"))
	if !IsConflict(wrapped) {
		t.Fatal("wrapped conflict not recognized")
	}
	if IsNotFound(wrapped) {
		t.Fatal("wrong predicate matched")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatal("plain error must not match")
	}
}
