package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskloom/todo-backend/internal/config"
	"github.com/taskloom/todo-backend/internal/handlers"
	"github.com/taskloom/todo-backend/internal/identity"
	"github.com/taskloom/todo-backend/internal/middleware"
	"github.com/taskloom/todo-backend/internal/models"
	"github.com/taskloom/todo-backend/internal/services"
	"github.com/taskloom/todo-backend/internal/token"
)

const testJWTSecret = "test-secret-key"

func mustNewUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return id
}

// newTestApp wires the full route table against an in-memory SQLite database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}))

	cfg := &config.Config{JWTSecret: testJWTSecret, CORSOrigins: "*"}
	tokens := token.NewService(testJWTSecret)

	// Federated login is not exercised here; the Graph client points at a
	// server that always refuses.
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(graph.Close)

	authService := services.NewAuthService(db, tokens, nil, identity.NewFacebookClient(graph.URL))
	todoService := services.NewTodoService(db)

	app := fiber.New()
	Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewTodoHandler(todoService, tokens),
		handlers.NewHealthHandler(db),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, tok string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set(middleware.TokenHeader, tok)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func registerUser(t *testing.T, app *fiber.App, name, email string) (id string, tok string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tok = resp.Header.Get(middleware.TokenHeader)
	require.NotEmpty(t, tok)

	var body map[string]any
	decodeBody(t, resp, &body)
	id, _ = body["id"].(string)
	require.NotEmpty(t, id)
	return id, tok
}

func TestRegisterLoginCreateAndCrossUserAccess(t *testing.T) {
	app := newTestApp(t)

	// Register returns the public fields and never the password.
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Nitesh", "email": "n@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(middleware.TokenHeader))

	var registered map[string]any
	decodeBody(t, resp, &registered)
	assert.Equal(t, "Nitesh", registered["name"])
	assert.Equal(t, "n@x.com", registered["email"])
	assert.NotEmpty(t, registered["id"])
	assert.NotContains(t, registered, "password")

	// Login yields a token.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "n@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login map[string]string
	decodeBody(t, resp, &login)
	tok := login["jwtToken"]
	require.NotEmpty(t, tok)

	// Create a todo owned by the caller.
	resp = doJSON(t, app, http.MethodPost, "/api/todo", tok, fiber.Map{
		"task": "buy milk", "detail": "2%  milk",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var todo map[string]any
	decodeBody(t, resp, &todo)
	assert.Equal(t, registered["id"], todo["user_id"])
	todoID, _ := todo["id"].(string)
	require.NotEmpty(t, todoID)

	// Another user's token gets 403 on that todo.
	_, otherTok := registerUser(t, app, "Someone Else", "other@x.com")
	resp = doJSON(t, app, http.MethodGet, "/api/todo/"+todoID, otherTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The owner can still read it.
	resp = doJSON(t, app, http.MethodGet, "/api/todo/"+todoID, tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterDuplicateEmailIsRejected(t *testing.T) {
	app := newTestApp(t)

	registerUser(t, app, "Nitesh", "n@x.com")
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Nitesh", "email": "n@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "Nitesh", "n@x.com")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "n@x.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/todo", "/api/todo/completed", "/api/todo/pending"} {
		resp := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "GET %s without token", path)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/todo", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A token signed with the wrong secret is rejected too.
	forged, err := token.NewService("other-secret").Issue(mustNewUUID(t))
	require.NoError(t, err)
	resp = doJSON(t, app, http.MethodGet, "/api/todo", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTodoFiltersAndToggle(t *testing.T) {
	app := newTestApp(t)
	_, tok := registerUser(t, app, "Nitesh", "n@x.com")

	var ids []string
	for _, task := range []string{"task one", "task two", "task three"} {
		resp := doJSON(t, app, http.MethodPost, "/api/todo", tok, fiber.Map{"task": task})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var todo map[string]any
		decodeBody(t, resp, &todo)
		ids = append(ids, todo["id"].(string))
	}

	// Toggle one todo to completed.
	resp := doJSON(t, app, http.MethodPatch, "/api/todo/"+ids[0], tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled map[string]any
	decodeBody(t, resp, &toggled)
	assert.Equal(t, true, toggled["is_completed"])

	var completed []map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/todo/completed", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &completed)
	require.Len(t, completed, 1)
	assert.Equal(t, ids[0], completed[0]["id"])

	var pending []map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/todo/pending", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &pending)
	assert.Len(t, pending, 2)

	// Toggling back restores the pending state.
	resp = doJSON(t, app, http.MethodPatch, "/api/todo/"+ids[0], tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &toggled)
	assert.Equal(t, false, toggled["is_completed"])
}

func TestTodoUpdateAndValidation(t *testing.T) {
	app := newTestApp(t)
	_, tok := registerUser(t, app, "Nitesh", "n@x.com")

	resp := doJSON(t, app, http.MethodPost, "/api/todo", tok, fiber.Map{"task": "buy milk"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var todo map[string]any
	decodeBody(t, resp, &todo)
	todoID := todo["id"].(string)

	// Too-short task on update is a validation failure listing the field.
	resp = doJSON(t, app, http.MethodPut, "/api/todo/"+todoID, tok, fiber.Map{"task": "1234"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]any
	decodeBody(t, resp, &errBody)
	assert.NotEmpty(t, errBody["fields"])

	resp = doJSON(t, app, http.MethodPut, "/api/todo/"+todoID, tok, fiber.Map{"task": "buy bread"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &todo)
	assert.Equal(t, "buy bread", todo["task"])
}

func TestTodoNotFoundAndMalformedID(t *testing.T) {
	app := newTestApp(t)
	_, tok := registerUser(t, app, "Nitesh", "n@x.com")

	resp := doJSON(t, app, http.MethodGet, "/api/todo/"+mustNewUUID(t).String(), tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Malformed ids surface exactly like absent ones.
	resp = doJSON(t, app, http.MethodGet, "/api/todo/12345", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFacebookSignInProviderFailure(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/facebook", "", fiber.Map{
		"userID": "12345", "accessToken": "rejected-upstream",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["db"])
}
