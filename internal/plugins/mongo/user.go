package mongo

import (
	"context"
	"errors"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AddLikedMeme adds the meme id to the user's liked set. The $addToSet is a
// single atomic document write: concurrent duplicates leave ModifiedCount 0
// for all but one caller, which is what keeps the like counter honest.
func (r *UserRepo) AddLikedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	return r.setOp(ctx, userID, bson.M{"$addToSet": bson.M{"likedMemes": memeID}})
}

func (r *UserRepo) RemoveLikedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	return r.setOp(ctx, userID, bson.M{"$pull": bson.M{"likedMemes": memeID}})
}

func (r *UserRepo) AddSavedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	return r.setOp(ctx, userID, bson.M{"$addToSet": bson.M{"savedMemes": memeID}})
}

func (r *UserRepo) RemoveSavedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	return r.setOp(ctx, userID, bson.M{"$pull": bson.M{"savedMemes": memeID}})
}

func (r *UserRepo) AddSeenMeme(ctx context.Context, userID, memeID string) error {
	_, err := r.setOp(ctx, userID, bson.M{"$addToSet": bson.M{"seenMemes": memeID}})
	return err
}

func (r *UserRepo) setOp(ctx context.Context, userID string, update bson.M) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrUserNotFound
	}
	return res.ModifiedCount > 0, nil
}
