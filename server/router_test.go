package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ashfall/server"
	"ashfall/server/domain"
)

func newTestMux() *http.ServeMux {
	return server.Route(domain.NewSimplePubSub(), domain.NewSimpleRoomManager("default"))
}

func TestRoute_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRoute_UnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
