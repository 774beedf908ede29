package mongo

import (
	"context"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepo struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{col: db.Collection("notifications")}
}

func (r *NotificationRepo) Insert(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, n)
	return err
}
