package mongo

import (
	"context"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepo struct {
	col *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) *CommentRepo {
	return &CommentRepo{col: db.Collection("comments")}
}

func (r *CommentRepo) Insert(ctx context.Context, c *domain.Comment) error {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *CommentRepo) ListByMeme(ctx context.Context, memeID string) ([]domain.Comment, error) {
	cur, err := r.col.Find(ctx, bson.M{"memeId": memeID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var comments []domain.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
