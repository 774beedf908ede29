//go:build integration

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/config"
	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

func testDatabase(t *testing.T) *mongodriver.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := New(ctx, config.MongoConfig{
		URI:         uri,
		Database:    "memevault_test",
		MaxPoolSize: 5,
		PingTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return db
}

func insertMeme(t *testing.T, db *mongodriver.Database, m domain.Meme) string {
	t.Helper()
	m.ID = uuid.NewString()
	_, err := db.Collection("memes").InsertOne(context.Background(), m)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Collection("memes").DeleteOne(context.Background(), bson.M{"_id": m.ID})
	})
	return m.ID
}

func TestMemeRepo_AdjustLikeCount_RoundTrip(t *testing.T) {
	db := testDatabase(t)
	repo := NewMemeRepo(db)
	id := insertMeme(t, db, domain.Meme{Uploader: "bob", LikeCount: 0})

	count, err := repo.AdjustLikeCount(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.AdjustLikeCount(context.Background(), id, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemeRepo_AdjustLikeCount_FloorHolds(t *testing.T) {
	db := testDatabase(t)
	repo := NewMemeRepo(db)
	id := insertMeme(t, db, domain.Meme{Uploader: "bob", LikeCount: 0})

	// The guard filter rejects the decrement and the current value comes
	// back from the fallback read.
	count, err := repo.AdjustLikeCount(context.Background(), id, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)
}

func TestMemeRepo_AdjustLikeCount_UnknownMeme(t *testing.T) {
	db := testDatabase(t)
	repo := NewMemeRepo(db)

	_, err := repo.AdjustLikeCount(context.Background(), uuid.NewString(), 1)
	assert.ErrorIs(t, err, domain.ErrMemeNotFound)

	_, err = repo.AdjustLikeCount(context.Background(), uuid.NewString(), -1)
	assert.ErrorIs(t, err, domain.ErrMemeNotFound)
}

func TestMemeRepo_IncrementCommentsCount(t *testing.T) {
	db := testDatabase(t)
	repo := NewMemeRepo(db)
	id := insertMeme(t, db, domain.Meme{Uploader: "bob"})

	count, err := repo.IncrementCommentsCount(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.IncrementCommentsCount(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
