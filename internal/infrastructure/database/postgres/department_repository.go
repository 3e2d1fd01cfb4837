package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

const departmentColumns = `id, name, display_name, is_technical_secretariat, created_at`

type departmentRepository struct {
	db *sql.DB
}

// NewDepartmentRepository builds the postgres-backed department repository.
func NewDepartmentRepository(db *sql.DB) department.Repository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*department.Department, error) {
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id))
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*department.Department, error) {
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE name = $1`, name))
}

func (r *departmentRepository) GetTechnicalSecretariat(ctx context.Context) (*department.Department, error) {
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE is_technical_secretariat LIMIT 1`))
}

func (r *departmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	return r.queryMany(ctx,
		`SELECT `+departmentColumns+` FROM departments ORDER BY display_name ASC`)
}

func (r *departmentRepository) ListByIDs(ctx context.Context, ids []int64) ([]*department.Department, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryMany(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id = ANY($1) ORDER BY display_name ASC`,
		pq.Array(ids))
}

func (r *departmentRepository) Create(ctx context.Context, d *department.Department) error {
	query := `
		INSERT INTO departments (name, display_name, is_technical_secretariat)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		d.Name, d.DisplayName, d.IsTechnicalSecretariat,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return errors.New(errors.ErrCodeConflict, "a department with this name already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert department")
	}
	return nil
}

func (r *departmentRepository) scanOne(row *sql.Row) (*department.Department, error) {
	d := &department.Department{}
	err := row.Scan(&d.ID, &d.Name, &d.DisplayName, &d.IsTechnicalSecretariat, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeDepartmentNotFound, "department not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan department")
	}
	return d, nil
}

func (r *departmentRepository) queryMany(ctx context.Context, query string, args ...any) ([]*department.Department, error) {
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query departments")
	}
	defer rows.Close()

	var departments []*department.Department
	for rows.Next() {
		d := &department.Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.DisplayName, &d.IsTechnicalSecretariat, &d.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan department")
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}
