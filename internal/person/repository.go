package person

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uday-rana/employees/internal/metrics"

	"github.com/uptrace/bun"
)

// SortSpec names a database column and a direction, both already checked
// against the sortable-column allow list.
type SortSpec struct {
	Column    string
	Direction string
}

// FieldUpdate is one validated column/value pair applied by UpdateFields.
type FieldUpdate struct {
	Column string
	Value  interface{}
}

type Repository interface {
	List(ctx context.Context, sort SortSpec) ([]Person, error)
	Create(ctx context.Context, person *Person) (*Person, error)
	GetByID(ctx context.Context, id int) (*Person, error)
	UpdateFields(ctx context.Context, id int, updates []FieldUpdate) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) List(ctx context.Context, sort SortSpec) ([]Person, error) {
	start := time.Now()
	var persons []Person
	err := r.db.NewSelect().
		Model(&persons).
		OrderExpr("? ?", bun.Ident(sort.Column), bun.Safe(sort.Direction)).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "people", time.Since(start), err)

	return persons, err
}

func (r *repository) Create(ctx context.Context, person *Person) (*Person, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(person).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "people", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return person, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Person, error) {
	start := time.Now()
	person := new(Person)
	err := r.db.NewSelect().Model(person).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "people", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return person, nil
}

// UpdateFields applies all given column updates in a single UPDATE statement
// so a logical update is atomic rather than one statement per field.
func (r *repository) UpdateFields(ctx context.Context, id int, updates []FieldUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	start := time.Now()
	query := r.db.NewUpdate().
		Model((*Person)(nil)).
		Where("id = ?", id)
	for _, update := range updates {
		query = query.Set("? = ?", bun.Ident(update.Column), update.Value)
	}
	result, err := query.Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "people", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	person := &Person{ID: id}
	result, err := r.db.NewDelete().Model(person).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "people", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
