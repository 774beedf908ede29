package mongo

import (
	"context"
	"errors"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MemeRepo struct {
	col *mongo.Collection
}

func NewMemeRepo(db *mongo.Database) *MemeRepo {
	return &MemeRepo{col: db.Collection("memes")}
}

func (r *MemeRepo) GetByID(ctx context.Context, id string) (*domain.Meme, error) {
	var m domain.Meme
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrMemeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemeRepo) ListAll(ctx context.Context) ([]domain.Meme, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var memes []domain.Meme
	if err := cur.All(ctx, &memes); err != nil {
		return nil, err
	}
	return memes, nil
}

func (r *MemeRepo) AdjustLikeCount(ctx context.Context, memeID string, delta int) (int, error) {
	return r.adjustCounter(ctx, memeID, "likeCount", delta)
}

func (r *MemeRepo) AdjustSaveCount(ctx context.Context, memeID string, delta int) (int, error) {
	return r.adjustCounter(ctx, memeID, "saveCount", delta)
}

func (r *MemeRepo) IncrementCommentsCount(ctx context.Context, memeID string) (int, error) {
	return r.adjustCounter(ctx, memeID, "commentsCount", 1)
}

// adjustCounter applies delta in one atomic update. Decrements carry a
// floor guard in the filter, so a counter at zero stays at zero instead of
// going negative.
func (r *MemeRepo) adjustCounter(ctx context.Context, memeID, field string, delta int) (int, error) {
	filter := bson.M{"_id": memeID}
	if delta < 0 {
		filter[field] = bson.M{"$gt": 0}
	}
	var m domain.Meme
	err := r.col.FindOneAndUpdate(ctx, filter,
		bson.M{"$inc": bson.M{field: delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if delta < 0 {
			// Guard filtered the document out: the counter is already at
			// the floor. Report the current value.
			cur, err := r.GetByID(ctx, memeID)
			if err != nil {
				return 0, err
			}
			return counterField(cur, field), nil
		}
		return 0, domain.ErrMemeNotFound
	}
	if err != nil {
		return 0, err
	}
	return counterField(&m, field), nil
}

func counterField(m *domain.Meme, field string) int {
	switch field {
	case "likeCount":
		return m.LikeCount
	case "saveCount":
		return m.SaveCount
	default:
		return m.CommentsCount
	}
}
