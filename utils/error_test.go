package utils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindForbidden, http.StatusForbidden},
		{KindInvalidState, http.StatusBadRequest},
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindLimitExceeded, http.StatusBadRequest},
		{KindDependencyFailure, http.StatusBadGateway},
		{ErrorKind("unknown"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.kind), "kind %s", tc.kind)
	}
}

func TestKindOfUnwrapsAndIgnoresPlainErrors(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(ConflictError("duplicate proposal")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrapped: %w", ConflictError("duplicate proposal"))))
	assert.Equal(t, ErrorKind(""), KindOf(fmt.Errorf("plain failure")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
