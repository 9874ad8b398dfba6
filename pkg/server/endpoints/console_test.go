package endpoints_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleStatus(t *testing.T) {
	t.Run("shows row counts when the database is reachable", func(t *testing.T) {
		ts := newTestServer(t)
		ts.health.On("CheckConnectivity").Return(nil)
		ts.health.On("Counts").Return(int64(3), int64(12), int64(2), nil)

		req := httptest.NewRequest("GET", "/console/status", nil)
		recorder := httptest.NewRecorder()
		ts.srv.Router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		body := recorder.Body.String()
		assert.Contains(t, body, "connected")
		assert.Contains(t, body, "listing_page_size")
	})

	t.Run("reports a connectivity failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.health.On("CheckConnectivity").Return(errors.New("connection refused"))

		req := httptest.NewRequest("GET", "/console/status", nil)
		recorder := httptest.NewRecorder()
		ts.srv.Router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "connection refused")
	})

	t.Run("console root redirects to status", func(t *testing.T) {
		ts := newTestServer(t)

		req := httptest.NewRequest("GET", "/console", nil)
		recorder := httptest.NewRecorder()
		ts.srv.Router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/console/status", recorder.Header().Get("Location"))
	})
}
