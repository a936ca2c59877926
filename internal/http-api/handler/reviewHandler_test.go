package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"watchlog/database"
	"watchlog/internal/config"
	"watchlog/internal/http-api/dto"
	"watchlog/internal/http-api/handler"
	"watchlog/internal/http-api/middleware"
	"watchlog/internal/http-api/models"
	"watchlog/internal/http-api/repository"
	"watchlog/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
	token  string
	userID int64
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:       "test-secret-test-secret-test-secret!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	reviewRepo := repository.NewReviewRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	authSvc := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		cfg,
	)
	reviewSvc := service.NewReviewService(reviewRepo, genreRepo)

	engine := gin.New()
	reviews := engine.Group("/reviews", middleware.AuthMiddleware(authSvc))
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(reviews)

	user, err := authSvc.Register("josuke", "password1234", "josuke@example.com")
	require.NoError(t, err)
	token, _, _, err := authSvc.Login("josuke", "password1234")
	require.NoError(t, err)

	return &testAPI{engine: engine, db: db, token: token, userID: user.ID}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decodeReview(t *testing.T, w *httptest.ResponseRecorder) dto.ReviewResponse {
	t.Helper()
	var resp dto.ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (a *testAPI) createReview(t *testing.T, body map[string]any) dto.ReviewResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/reviews/", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeReview(t, w)
}

func (a *testAPI) createGenre(t *testing.T, name string) *models.Genre {
	t.Helper()
	g := &models.Genre{Name: name}
	require.NoError(t, a.db.Create(g).Error)
	return g
}

func TestReviewRoutesRequireAuth(t *testing.T) {
	api := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/reviews/", nil)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReviewOwnerComesFromToken(t *testing.T) {
	api := setupTestAPI(t)

	// user_id in the body must be ignored
	created := api.createReview(t, map[string]any{
		"user_id":     999,
		"title":       "Steel Ball Run",
		"eps_watched": 5,
		"eps_total":   24,
	})

	assert.Equal(t, api.userID, created.UserID)
	assert.Equal(t, "Steel Ball Run", created.Title)
	require.NotNil(t, created.EpsWatched)
	assert.Equal(t, 5, *created.EpsWatched)
	require.NotNil(t, created.EpsTotal)
	assert.Equal(t, 24, *created.EpsTotal)

	w := api.do(t, http.MethodGet, fmt.Sprintf("/reviews/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeReview(t, w)
	assert.Equal(t, api.userID, got.UserID)
	assert.Equal(t, "Steel Ball Run", got.Title)
}

func TestGetMissingReviewAnswers200WithErrorBody(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, http.MethodGet, "/reviews/404", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Review 404 does not exist", body["error"])
}

func TestUpdateReviewFalsySkip(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createReview(t, map[string]any{
		"title":       "Steel Ball Run",
		"eps_watched": 5,
		"eps_total":   24,
	})

	// zero is skipped, the stored value survives
	w := api.do(t, http.MethodPatch, fmt.Sprintf("/reviews/%d", created.ID), map[string]any{
		"eps_watched": 0,
		"title":       "",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeReview(t, w)
	require.NotNil(t, updated.EpsWatched)
	assert.Equal(t, 5, *updated.EpsWatched)
	assert.Equal(t, "Steel Ball Run", updated.Title)

	// a truthy value lands
	w = api.do(t, http.MethodPut, fmt.Sprintf("/reviews/%d", created.ID), map[string]any{
		"eps_watched": 12,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated = decodeReview(t, w)
	assert.Equal(t, 12, *updated.EpsWatched)
}

func TestUpdateMissingReview(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, http.MethodPut, "/reviews/99", map[string]any{"title": "x"})

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Review 99 not found", body["Error"])
}

func TestDeleteReview(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createReview(t, map[string]any{"title": "Lain"})

	w := api.do(t, http.MethodDelete, fmt.Sprintf("/reviews/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Review Lain was deleted", body["Message"])

	// gone now: the single GET answers 200 with an error payload
	w = api.do(t, http.MethodGet, fmt.Sprintf("/reviews/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, fmt.Sprintf("Review %d does not exist", created.ID), body["error"])

	// a second delete is a real 404
	w = api.do(t, http.MethodDelete, fmt.Sprintf("/reviews/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReviewsSortedByTitle(t *testing.T) {
	api := setupTestAPI(t)

	for _, title := range []string{"Monster", "Akira", "Trigun"} {
		api.createReview(t, map[string]any{"title": title})
	}

	w := api.do(t, http.MethodGet, "/reviews/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []dto.ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Akira", list[0].Title)
	assert.Equal(t, "Monster", list[1].Title)
	assert.Equal(t, "Trigun", list[2].Title)
}

func TestLinkAndUnlinkGenre(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createReview(t, map[string]any{"title": "Berserk"})
	g := api.createGenre(t, "dark fantasy")

	w := api.do(t, http.MethodPost, fmt.Sprintf("/reviews/%d/genres/%d", created.ID, g.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	linked := decodeReview(t, w)
	require.Len(t, linked.Genres, 1)
	assert.Equal(t, "dark fantasy", linked.Genres[0].Name)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/reviews/%d/genres/%d", created.ID, g.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	unlinked := decodeReview(t, w)
	assert.Empty(t, unlinked.Genres)

	// unlinking an absent association is a data error, not a no-op
	w = api.do(t, http.MethodDelete, fmt.Sprintf("/reviews/%d/genres/%d", created.ID, g.ID), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLinkGenreMissingGenreIsDataError(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createReview(t, map[string]any{"title": "Berserk"})

	w := api.do(t, http.MethodPost, fmt.Sprintf("/reviews/%d/genres/404", created.ID), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLinkGenreMissingReviewUses404Wording(t *testing.T) {
	api := setupTestAPI(t)
	g := api.createGenre(t, "action")

	w := api.do(t, http.MethodPost, fmt.Sprintf("/reviews/77/genres/%d", g.ID), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// the message names the genre even though the review is what is
	// missing; existing clients depend on this wording
	assert.Equal(t, fmt.Sprintf("Genre %d could not connect to 77", g.ID), body["Error"])
}

func TestCreateReviewWithDates(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createReview(t, map[string]any{
		"title":        "Mononoke",
		"date_started": "2024-01-15",
	})
	require.NotNil(t, created.DateStarted)
	assert.Equal(t, "2024-01-15", *created.DateStarted)

	w := api.do(t, http.MethodPost, "/reviews/", map[string]any{
		"title":        "Mononoke 2",
		"date_started": "15/01/2024",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
