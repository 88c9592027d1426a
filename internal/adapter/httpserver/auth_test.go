package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpserver "github.com/zawlinnphyo/wordstake/internal/adapter/httpserver"
)

func TestBasicAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	handler := httpserver.BasicAuth("admin", string(hash))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing credentials", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/refunds/r1/approve", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, `Basic realm="admin"`, w.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong password", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/refunds/r1/approve", nil)
		r.SetBasicAuth("admin", "guess")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong username", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/refunds/r1/approve", nil)
		r.SetBasicAuth("root", "s3cret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid credentials", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/refunds/r1/approve", nil)
		r.SetBasicAuth("admin", "s3cret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
	})
}
