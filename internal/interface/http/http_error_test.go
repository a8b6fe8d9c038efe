package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
)

func TestDomainErrorStatuses(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{apperrors.CodeInvalidInput, http.StatusBadRequest},
		{apperrors.CodeNotFound, http.StatusNotFound},
		{apperrors.CodeInsufficientData, http.StatusUnprocessableEntity},
		{apperrors.CodeCatalog, http.StatusBadGateway},
		{apperrors.CodeProfileStore, http.StatusServiceUnavailable},
		{"quota_exhausted", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			httpErr := domainError(apperrors.Wrap(tc.code, "lookup failed", errors.New("boom")))
			require.Equal(t, tc.status, httpErr.Status)
			require.Equal(t, tc.code, httpErr.Code)
			require.Equal(t, "lookup failed: boom", httpErr.Message)
		})
	}
}

func TestDomainErrorHidesUncodedFailures(t *testing.T) {
	httpErr := asHTTPError(errors.New("pgx: connection reset"))
	require.Equal(t, http.StatusInternalServerError, httpErr.Status)
	require.Equal(t, codeInternal, httpErr.Code)
	require.Equal(t, "something went wrong", httpErr.Message)
}

func TestAsHTTPErrorKeepsExplicitStatus(t *testing.T) {
	explicit := NewHTTPError(http.StatusTooManyRequests, codeRateLimited, "too many requests", nil)
	require.Same(t, explicit, asHTTPError(explicit))
}
