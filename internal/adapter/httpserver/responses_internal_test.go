package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: bad day", domain.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrSubmitInFlight, http.StatusConflict, "SUBMIT_IN_FLIGHT"},
		{fmt.Errorf("%w: task is completed", domain.ErrConflict), http.StatusConflict, "CONFLICT"},
		{domain.ErrUpstreamTimeout, http.StatusServiceUnavailable, "UPSTREAM_TIMEOUT"},
		{domain.ErrSchemaInvalid, http.StatusServiceUnavailable, "SCHEMA_INVALID"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		writeError(w, r, c.err, nil)
		if w.Code != c.status {
			t.Fatalf("status for %v: got %d want %d", c.err, w.Code, c.status)
		}
		if body := w.Body.String(); !strings.Contains(body, `"code":"`+c.code+`"`) {
			t.Fatalf("body for %v missing code %s: %s", c.err, c.code, body)
		}
	}
}
