package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r)
	return r
}

// Every owner-scoped endpoint must refuse anonymous requests before any
// handler logic runs. The export download in particular sits inside the
// owner-gated form group, not on a top-level path of its own.
func TestOwnerRoutesRequireAuth(t *testing.T) {
	r := testRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/forms"},
		{http.MethodGet, "/api/forms"},
		{http.MethodPut, "/api/forms/abc"},
		{http.MethodDelete, "/api/forms/abc"},
		{http.MethodPost, "/api/forms/abc/duplicate"},
		{http.MethodGet, "/api/forms/abc/responses"},
		{http.MethodGet, "/api/forms/abc/responses/table"},
		{http.MethodPost, "/api/forms/abc/export"},
		{http.MethodGet, "/api/forms/abc/export/job-1"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, tt.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want %d", tt.method, tt.path, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestNoTopLevelExportRoute(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/exports/job-1", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /api/exports/job-1 = %d, want %d", w.Code, http.StatusNotFound)
	}
}
