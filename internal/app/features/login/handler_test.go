package login

import (
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
	"github.com/upcyclebuild/upcyclehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(string(auth.GenerateKey()), "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("session manager init failed: %v", err)
	}
	return NewHandler(db, sm, errorsfeature.NewErrorLogger(logger), logger)
}

func TestHandleSignIn_Succeeds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "pat@example.com", "correct-horse")

	h := newTestHandler(t, db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"email": "pat@example.com", "password": "correct-horse"})
	rec := httptest.NewRecorder()

	h.HandleSignIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp sessionResponse
	testutil.DecodeJSON(t, rec, &resp)
	if resp.ID != u.ID.Hex() || resp.Email != "pat@example.com" {
		t.Errorf("unexpected session response: %+v", resp)
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("expected a session cookie to be set")
	}
}

func TestHandleSignIn_WrongPasswordIs401(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateUser(ctx, "pat@example.com", "correct-horse")

	h := newTestHandler(t, db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"email": "pat@example.com", "password": "wrong"})
	rec := httptest.NewRecorder()

	h.HandleSignIn(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleSignIn_UnknownEmailIs401(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := newTestHandler(t, db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"email": "ghost@example.com", "password": "whatever"})
	rec := httptest.NewRecorder()

	h.HandleSignIn(rec, req)

	// Unknown account and wrong password answer identically.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleSignIn_MissingFieldsIs400(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := newTestHandler(t, db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"email": "pat@example.com"})
	rec := httptest.NewRecorder()

	h.HandleSignIn(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
