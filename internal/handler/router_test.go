package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameboxd/backend/internal/rawg"
	"gameboxd/backend/internal/service"
	"gameboxd/backend/internal/store"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestAPI wires the full router against the in-memory store and a stub
// catalog provider serving the given path -> body responses.
func newTestAPI(t *testing.T, responses map[string]string) *gin.Engine {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Not found."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	st := store.NewMemory()
	catalog := rawg.NewClient(server.URL, "", nil)
	return NewRouter(RouterConfig{
		JWTSecret: testSecret,
		Users:     service.NewUserService(st, testSecret, time.Hour, catalog),
		Reviews:   service.NewReviewService(st, catalog),
		Lists:     service.NewListService(st, catalog),
		Games:     service.NewGameService(st, catalog),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

// register signs a fresh user up and returns their token.
func register(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"name":     "tester",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, ok := decode(t, rec)["token"].(string)
	require.True(t, ok)
	return token
}

func TestPing(t *testing.T) {
	router := newTestAPI(t, nil)
	rec := doJSON(t, router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", decode(t, rec)["message"])
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestAPI(t, nil)
	register(t, router, "a@x.com")

	// Same email again is a conflict.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "a@x.com",
		"name":     "other",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["token"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestAPI(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/reviews", "", gin.H{
		"game_id": "42", "rating": 9, "comment": "Great",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewFeedsGameRating(t *testing.T) {
	router := newTestAPI(t, map[string]string{
		"/games/42": `{"id": 42, "name": "Outer Wilds", "description_raw": "Space."}`,
	})
	token := register(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/reviews", token, gin.H{
		"game_id": "42",
		"rating":  9,
		"comment": "Great",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	review := decode(t, rec)
	assert.Equal(t, float64(9), review["rating"])
	assert.NotContains(t, rec.Body.String(), "password_hash")

	// A second review for the same game is rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/reviews", token, gin.H{
		"game_id": "42", "rating": 3, "comment": "Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The detail endpoint shows the average on the 0-5 display scale.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/games/42", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	details := decode(t, rec)
	assert.Equal(t, 4.5, details["gameboxd_rating"])
	assert.Equal(t, float64(1), details["gameboxd_rating_count"])
	assert.Equal(t, "Outer Wilds", details["name"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/games/42/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "Great", reviews[0]["comment"])

	// My reviews carry the reviewed game's minimal record.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/reviews/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	game, ok := reviews[0]["game"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	assert.Equal(t, "Outer Wilds", game["name"])
}

func TestUnknownGameIs404(t *testing.T) {
	router := newTestAPI(t, nil)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/games/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPrivateListsHiddenFromProfile(t *testing.T) {
	router := newTestAPI(t, nil)
	aliceToken := register(t, router, "a@x.com")
	bobToken := register(t, router, "b@x.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/lists", aliceToken, gin.H{"name": "Backlog"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	listID := uint(decode(t, rec)["id"].(float64))

	rec = doJSON(t, router, http.MethodGet, "/api/v1/me", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	aliceID := uint(decode(t, rec)["id"].(float64))

	profilePath := fmt.Sprintf("/api/v1/users/%d/profile", aliceID)
	rec = doJSON(t, router, http.MethodGet, profilePath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["public_lists"])

	// Bob cannot see or edit the private list either.
	listPath := fmt.Sprintf("/api/v1/lists/%d", listID)
	rec = doJSON(t, router, http.MethodGet, listPath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, router, http.MethodPatch, listPath, bobToken, gin.H{"is_public": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, listPath, aliceToken, gin.H{"is_public": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, profilePath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lists, ok := decode(t, rec)["public_lists"].([]any)
	require.True(t, ok)
	require.Len(t, lists, 1)

	rec = doJSON(t, router, http.MethodGet, listPath, bobToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListMembershipFlow(t *testing.T) {
	router := newTestAPI(t, map[string]string{
		"/games/42": `{"id": 42, "name": "Outer Wilds"}`,
	})
	token := register(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/lists", token, gin.H{"name": "Backlog"})
	require.Equal(t, http.StatusCreated, rec.Code)
	listID := uint(decode(t, rec)["id"].(float64))

	addPath := fmt.Sprintf("/api/v1/lists/%d/games", listID)
	rec = doJSON(t, router, http.MethodPost, addPath, token, gin.H{"game_id": "42"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, addPath, token, gin.H{"game_id": "42"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/lists/%d", listID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := decode(t, rec)["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	itemID := uint(item["id"].(float64))

	// List items are joined with their game's minimal record.
	game, ok := item["game"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	assert.Equal(t, "Outer Wilds", game["name"])

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/lists/%d/items/%d", listID, itemID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/lists/%d", listID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/lists/%d", listID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeAndStatusEndpoints(t *testing.T) {
	router := newTestAPI(t, nil)
	token := register(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/games/like", token, gin.H{"game_id": "42"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["liked"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/games/liked", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var liked []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &liked))
	assert.Equal(t, []string{"42"}, liked)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/games/like", token, gin.H{"game_id": "42"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["liked"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/games/status", token, gin.H{"game_id": "42", "status": "PLAYING"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/games/status", token, gin.H{"game_id": "42", "status": "INVALID"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/games/status?status=PLAYING", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var statuses []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, "PLAYING", statuses[0]["status"])

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/games/42/status", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/games/42/status", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeLifecycle(t *testing.T) {
	router := newTestAPI(t, nil)
	token := register(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/me", token, gin.H{"bio": "Completionist."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Completionist.", decode(t, rec)["bio"])

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The account is gone; the still-valid token no longer resolves.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
