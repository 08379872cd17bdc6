package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

const collectionCases = "hiring_cases"

type CaseRepository struct {
	col *mongo.Collection
}

func NewCaseRepository(db *mongo.Database) *CaseRepository {
	return &CaseRepository{col: db.Collection(collectionCases)}
}

// Create inserts a new hiring case document.
func (r *CaseRepository) Create(ctx context.Context, c *domain.HiringCase) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *CaseRepository) FindByID(ctx context.Context, id string) (*domain.HiringCase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.HiringCase
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update persists the editable fields only; status, approver and
// identity references are owned by the transition writes below.
func (r *CaseRepository) Update(ctx context.Context, c *domain.HiringCase) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"candidate_name": c.CandidateName,
		"phone":          c.Phone,
		"workshop":       c.Workshop,
		"interview_at":   c.InterviewAt,
		"notes":          c.Notes,
		"updated_at":     c.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}

// SetStatus is a compare-and-swap on status: the write applies only if
// the stored status still equals from.
func (r *CaseRepository) SetStatus(ctx context.Context, id string, from, to domain.CaseStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(from)}
	update := bson.M{"$set": bson.M{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// MarkHired sets status, approver and employee reference in one guarded
// write, so the three fields become visible together or not at all.
func (r *CaseRepository) MarkHired(ctx context.Context, id string, from domain.CaseStatus, approvedByID, employeeID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(from)}
	update := bson.M{"$set": bson.M{
		"status":         string(domain.StatusHired),
		"approved_by_id": approvedByID,
		"employee_id":    employeeID,
		"updated_at":     time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// SetChatID records or clears the linked channel identity.
func (r *CaseRepository) SetChatID(ctx context.Context, id, chatID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"chat_id":    chatID,
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}

// List returns cases matching filter, newest interviews first.
func (r *CaseRepository) List(ctx context.Context, filter ports.ListCasesFilter) ([]*domain.HiringCase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = []bson.M{
			{"candidate_name": regex},
			{"phone": regex},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "interview_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cases []*domain.HiringCase
	if err := cur.All(ctx, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// EnsureIndexes creates necessary indexes on the hiring_cases collection.
func (r *CaseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "interview_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
