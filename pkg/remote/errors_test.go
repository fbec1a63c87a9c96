package remote

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		status int
		code   string
		kind   Kind
	}{
		{status: http.StatusConflict, code: CodeUniqueViolation, kind: KindConstraint},
		{status: http.StatusBadRequest, code: CodeUniqueViolation, kind: KindConstraint},
		{status: http.StatusConflict, kind: KindConstraint},
		{status: http.StatusInternalServerError, code: CodeSchema, kind: KindSchema},
		{status: http.StatusUnauthorized, code: CodeUnauthorized, kind: KindAuth},
		{status: http.StatusForbidden, kind: KindAuth},
		{status: http.StatusBadRequest, code: CodeInvalidInput, kind: KindValidation},
		{status: http.StatusServiceUnavailable, kind: KindConnectivity},
		{status: http.StatusTeapot, kind: KindOther},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%s", tt.status, tt.code), func(t *testing.T) {
			err := newStatusError(tt.status, errorBody{Code: tt.code})
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, http.StatusText(tt.status), err.Message)
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &Error{Kind: KindSchema, Message: "m"})
	assert.Equal(t, KindSchema, KindOf(wrapped))
	assert.Equal(t, KindOther, KindOf(errors.New("plain")))
	assert.Equal(t, KindOther, KindOf(nil))
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := newTransportError("GET /api/v1/posts", inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, KindConnectivity, err.Kind)
	assert.Equal(t, "GET /api/v1/posts: dial tcp: refused", err.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "connectivity", KindConnectivity.String())
	assert.Equal(t, "schema", KindSchema.String())
	assert.Equal(t, "constraint", KindConstraint.String())
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "other", KindOther.String())
}
