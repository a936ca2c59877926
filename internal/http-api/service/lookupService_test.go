package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"watchlog/internal/http-api/models"
	"watchlog/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLookupService(t *testing.T) LookupService {
	t.Helper()
	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// no redis in unit tests; reads go straight to the store
	return NewLookupService(repository.NewLookupRepo(db), nil, time.Hour, logger)
}

func TestLookupStatuses(t *testing.T) {
	svc := newLookupService(t)
	ctx := context.Background()

	for _, name := range []string{"watching", "completed", "dropped"} {
		require.NoError(t, svc.CreateStatus(ctx, &models.Status{Name: name}))
	}

	list, err := svc.GetStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "watching", list[0].Name)
	assert.Equal(t, "completed", list[1].Name)
	assert.Equal(t, "dropped", list[2].Name)
}

func TestLookupTypesAndRatings(t *testing.T) {
	svc := newLookupService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateType(ctx, &models.MediaType{Name: "TV"}))
	require.NoError(t, svc.CreateRating(ctx, &models.Rating{Name: "S"}))

	types, err := svc.GetTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "TV", types[0].Name)

	ratings, err := svc.GetRatings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "S", ratings[0].Name)
}

func TestLookupCreateRequiresName(t *testing.T) {
	svc := newLookupService(t)
	ctx := context.Background()

	assert.Error(t, svc.CreateStatus(ctx, &models.Status{Name: "  "}))
	assert.Error(t, svc.CreateType(ctx, &models.MediaType{Name: ""}))
	assert.Error(t, svc.CreateRating(ctx, &models.Rating{Name: ""}))
}
