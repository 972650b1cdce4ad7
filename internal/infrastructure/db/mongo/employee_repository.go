package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/ports"
)

const collectionEmployees = "employees"

type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees)}
}

type mongoEmployee struct {
	UserID     string    `bson:"user_id"`
	EmpID      string    `bson:"emp_id"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email,omitempty"`
	Department string    `bson:"department,omitempty"`
	Position   string    `bson:"position,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
	UpdatedBy  string    `bson:"updated_by,omitempty"`
}

func (m mongoEmployee) toDomain() domain.Employee {
	return domain.Employee{
		UserID:     m.UserID,
		EmpID:      m.EmpID,
		Name:       m.Name,
		Email:      m.Email,
		Department: m.Department,
		Position:   m.Position,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
		UpdatedBy:  m.UpdatedBy,
	}
}

// List returns every employee in store order.
func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEmployee
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}

	out := make([]domain.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoEmployee
	if err := r.col.FindOne(ctx, bson.M{"user_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	e := doc.toDomain()
	return &e, nil
}

func (r *EmployeeRepository) Insert(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEmployee{
		UserID:     e.UserID,
		EmpID:      e.EmpID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		UpdatedBy:  e.UpdatedBy,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	created := *e
	return &created, nil
}

// Update applies the non-nil patch fields plus the update stamp and returns
// the post-update document.
func (r *EmployeeRepository) Update(ctx context.Context, id string, patch ports.EmployeePatch) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"updated_at": patch.UpdatedAt,
		"updated_by": patch.UpdatedBy,
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.Position != nil {
		set["position"] = *patch.Position
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoEmployee
	err := r.col.FindOneAndUpdate(ctx, bson.M{"user_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}

	e := doc.toDomain()
	return &e, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": id})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the employees collection.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "emp_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
