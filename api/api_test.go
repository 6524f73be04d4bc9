package api

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"fundscore/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	returnDomainError(err, c)
	return w.Code
}

func Test_returnDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid input is a 400", func(t *testing.T) {
		err := domain.InvalidInputError{Field: "start", Reason: "bad date"}
		require.Equal(t, 400, statusFor(t, err))
	})

	t.Run("wrapped invalid input is still a 400", func(t *testing.T) {
		err := fmt.Errorf("failed to screen: %w", domain.InvalidInputError{Field: "expression", Reason: "empty"})
		require.Equal(t, 400, statusFor(t, err))
	})

	t.Run("insufficient data is a 422", func(t *testing.T) {
		err := fmt.Errorf("failed to compute metrics: %w", domain.ErrInsufficientData)
		require.Equal(t, 422, statusFor(t, err))
	})

	t.Run("upstream failure is a 502", func(t *testing.T) {
		err := domain.UpstreamError{Op: "list nav history", Err: errors.New("connection refused")}
		require.Equal(t, 502, statusFor(t, err))
	})

	t.Run("anything else is a 500", func(t *testing.T) {
		require.Equal(t, 500, statusFor(t, errors.New("boom")))
	})
}
