package postgres

import (
	"context"
	"database/sql"

	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

const accountColumns = `
	id, first_name, last_name, email, username, password_hash, kind, created_at,
	cloister, admin_role, admin_department_id`

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository builds the postgres-backed account repository.
func NewAccountRepository(db *sql.DB) account.Repository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username))
}

func (r *accountRepository) Create(ctx context.Context, acc *account.Account) error {
	var (
		cloister  *string
		adminRole *string
		adminDept *int64
	)
	switch acc.Kind {
	case account.KindEndUser:
		if acc.EndUser == nil {
			return errors.New(errors.ErrCodeValidation, "end user account requires a profile")
		}
		c := string(acc.EndUser.Cloister)
		cloister = &c
	case account.KindAdmin:
		if acc.Admin == nil {
			return errors.New(errors.ErrCodeValidation, "admin account requires a profile")
		}
		role := string(acc.Admin.Role)
		adminRole = &role
		if acc.Admin.DepartmentID != 0 {
			id := acc.Admin.DepartmentID
			adminDept = &id
		}
	default:
		return errors.New(errors.ErrCodeValidation, "unknown account kind")
	}

	query := `
		INSERT INTO accounts (first_name, last_name, email, username, password_hash, kind, cloister, admin_role, admin_department_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		acc.FirstName, acc.LastName, acc.Email, acc.Username, acc.PasswordHash,
		acc.Kind, cloister, adminRole, adminDept,
	).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return errors.New(errors.ErrCodeConflict, "email or username already taken")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert account")
	}
	return nil
}

func (r *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email)
}

func (r *accountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`, username)
}

func (r *accountRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := exec(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to check account existence")
	}
	return found, nil
}

func (r *accountRepository) scanOne(row *sql.Row) (*account.Account, error) {
	var (
		acc       account.Account
		cloister  sql.NullString
		adminRole sql.NullString
		adminDept sql.NullInt64
	)
	err := row.Scan(
		&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.Username,
		&acc.PasswordHash, &acc.Kind, &acc.CreatedAt,
		&cloister, &adminRole, &adminDept,
	)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeAccountNotFound, "account not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan account")
	}

	switch acc.Kind {
	case account.KindEndUser:
		acc.EndUser = &account.EndUserProfile{Cloister: account.Cloister(cloister.String)}
	case account.KindAdmin:
		acc.Admin = &account.AdminProfile{
			Role:         account.AdminRole(adminRole.String),
			DepartmentID: adminDept.Int64,
		}
	}
	return &acc, nil
}
