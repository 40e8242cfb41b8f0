package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/upcyclebuild/upcyclehub/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_ReportsConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := NewHandler(db.Client(), zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp healthResponse
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != "ok" || resp.Database != "connected" {
		t.Errorf("unexpected health response: %+v", resp)
	}
}
