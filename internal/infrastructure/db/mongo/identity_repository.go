package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

const collectionIdentities = "employee_identities"

type IdentityRepository struct {
	col *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{col: db.Collection(collectionIdentities)}
}

// Create inserts a provisioned identity. The unique index on login turns
// a duplicate into domain.ErrIdentityConflict.
func (r *IdentityRepository) Create(ctx context.Context, id *domain.EmployeeIdentity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, id); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: login %q", domain.ErrIdentityConflict, id.Login)
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.EmployeeIdentity, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *IdentityRepository) FindByLogin(ctx context.Context, login string) (*domain.EmployeeIdentity, error) {
	return r.findOne(ctx, bson.M{"login": login})
}

func (r *IdentityRepository) LoginExists(ctx context.Context, login string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"login": login}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateSecret replaces the stored verifier in place.
func (r *IdentityRepository) UpdateSecret(ctx context.Context, id, secretHash string) error {
	return r.setFields(ctx, id, bson.M{"secret_hash": secretHash})
}

func (r *IdentityRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.setFields(ctx, id, bson.M{"active": active})
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M) (*domain.EmployeeIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var identity domain.EmployeeIdentity
	if err := r.col.FindOne(ctx, filter).Decode(&identity); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

func (r *IdentityRepository) setFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// EnsureIndexes guarantees login uniqueness at the store level.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "login", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
