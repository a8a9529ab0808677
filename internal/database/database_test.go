package database_test

import (
	"context"
	"testing"

	"vidtrack/internal/database"
	"vidtrack/internal/database/dbtest"
	"vidtrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := database.NewUserStore(dbtest.New(t))

	u := &models.User{Email: "a@x.com", PasswordHash: "hash", Role: models.RoleUser}
	require.NoError(t, store.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, models.RoleUser, got.Role)
}

func TestUserStore_FindByEmail_NotFound(t *testing.T) {
	store := database.NewUserStore(dbtest.New(t))

	got, err := store.FindByEmail(context.Background(), "nobody@x.com")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestUserStore_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	store := database.NewUserStore(db)

	require.NoError(t, store.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "h1", Role: models.RoleUser}))
	err := store.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "h2", Role: models.RoleUser})
	require.ErrorIs(t, err, database.ErrDuplicate)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserStore_WithVideos(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	users := database.NewUserStore(db)
	videos := database.NewVideoStore(db)

	u := &models.User{Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser}
	require.NoError(t, users.Create(ctx, u))

	t.Run("empty lists", func(t *testing.T) {
		full, err := users.WithVideos(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, full.LikedVideos)
		assert.NotNil(t, full.WatchedVideos)
		assert.Empty(t, full.LikedVideos)
	})

	liked, err := videos.Add(ctx, u.ID, "cats", 7, models.VideoLiked)
	require.NoError(t, err)
	assert.Equal(t, models.VideoLiked, liked.Type)

	watched, err := videos.Add(ctx, u.ID, "dogs", 8, models.VideoWatched)
	require.NoError(t, err)
	assert.Equal(t, models.VideoWatched, watched.Type)

	t.Run("populated", func(t *testing.T) {
		full, err := users.WithVideos(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", full.Email)
		require.Len(t, full.LikedVideos, 1)
		require.Len(t, full.WatchedVideos, 1)
		assert.Equal(t, "cats", full.LikedVideos[0].Title)
		assert.Equal(t, 8, full.WatchedVideos[0].VideoID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := users.WithVideos(ctx, u.ID+100)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestVideoStore_Add_UnknownType(t *testing.T) {
	videos := database.NewVideoStore(dbtest.New(t))

	_, err := videos.Add(context.Background(), 1, "x", 1, models.VideoType("favourite"))
	assert.ErrorIs(t, err, models.ErrUnknownVideoType)
}
