package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

const collectionTokens = "link_tokens"

type TokenRepository struct {
	col *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{col: db.Collection(collectionTokens)}
}

// Save upserts the one token record of a case. Replacing the document
// discards the previous token value and clears any linkage fields, which
// is exactly the re-issue semantics: the old value stops resolving.
func (r *TokenRepository) Save(ctx context.Context, t *domain.LinkToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.CaseID}, t, opts)
	return err
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*domain.LinkToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.LinkToken
	if err := r.col.FindOne(ctx, bson.M{"token": token}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) FindByCase(ctx context.Context, caseID string) (*domain.LinkToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.LinkToken
	if err := r.col.FindOne(ctx, bson.M{"_id": caseID}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Link records the channel identity and linkage time on the token.
func (r *TokenRepository) Link(ctx context.Context, caseID, chatID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"chat_id":    chatID,
		"linked_at":  at,
		"updated_at": at,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": caseID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

// EnsureIndexes guarantees token value uniqueness at the store level.
func (r *TokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
