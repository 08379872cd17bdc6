package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

const collectionZoneAccess = "zone_accesses"

type AccessRepository struct {
	col *mongo.Collection
}

func NewAccessRepository(db *mongo.Database) *AccessRepository {
	return &AccessRepository{col: db.Collection(collectionZoneAccess)}
}

// Upsert replaces the grant for (employee, zone); there is at most one.
func (r *AccessRepository) Upsert(ctx context.Context, a *domain.EmployeeZoneAccess) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"employee_id": a.EmployeeID, "zone": a.Zone}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, filter, a, opts)
	return err
}

func (r *AccessRepository) FindActive(ctx context.Context, employeeID string) ([]*domain.EmployeeZoneAccess, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"employee_id": employeeID, "active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var grants []*domain.EmployeeZoneAccess
	if err := cur.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// Revoke deactivates the grant; a missing grant is a no-op.
func (r *AccessRepository) Revoke(ctx context.Context, employeeID, zone string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"employee_id": employeeID, "zone": zone}
	update := bson.M{"$set": bson.M{"active": false}}
	_, err := r.col.UpdateOne(ctx, filter, update)
	return err
}

// EnsureIndexes enforces one grant per (employee, zone).
func (r *AccessRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "zone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
