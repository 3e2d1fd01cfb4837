package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Constraint names referenced when mapping unique violations.
const (
	constraintClaimIdempotencyKey = "claims_idempotency_key_key"
	constraintClaimSupportersPK   = "claim_supporters_pkey"
)

const claimColumns = `
	c.id, c.detail, c.status, c.image_path, c.department_id, c.creator_id,
	c.idempotency_key, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM claim_supporters s WHERE s.claim_id = c.id) AS supporters_count`

type claimRepository struct {
	db *sql.DB
}

// NewClaimRepository builds the postgres-backed claim repository.
func NewClaimRepository(db *sql.DB) claim.Repository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(ctx context.Context, c *claim.Claim) error {
	query := `
		INSERT INTO claims (detail, status, image_path, department_id, creator_id, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		c.Detail, c.Status, c.ImagePath, c.DepartmentID, c.CreatorID, c.IdempotencyKey,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintClaimIdempotencyKey) {
			return errors.New(errors.ErrCodeConflict, "a claim with this idempotency key already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert claim")
	}
	return nil
}

func (r *claimRepository) GetByID(ctx context.Context, id int64) (*claim.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims c WHERE c.id = $1`, claimColumns)
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *claimRepository) GetByIdempotencyKey(ctx context.Context, key string) (*claim.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims c WHERE c.idempotency_key = $1`, claimColumns)
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx, query, key))
}

func (r *claimRepository) ListPending(ctx context.Context, departmentID *int64) ([]*claim.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims c WHERE c.status = $1`, claimColumns)
	args := []any{claim.StatusPending}
	if departmentID != nil {
		query += ` AND c.department_id = $2`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY c.created_at DESC`

	return r.queryMany(ctx, query, args...)
}

func (r *claimRepository) List(ctx context.Context, filter claim.ListFilter) ([]*claim.Claim, error) {
	if filter.DepartmentIDs != nil && len(filter.DepartmentIDs) == 0 {
		return nil, nil
	}

	var (
		conds []string
		args  []any
	)
	if filter.DepartmentIDs != nil {
		args = append(args, pq.Array(filter.DepartmentIDs))
		conds = append(conds, fmt.Sprintf("c.department_id = ANY($%d)", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("c.status = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM claims c`, claimColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY c.created_at DESC`

	return r.queryMany(ctx, query, args...)
}

func (r *claimRepository) ListByCreator(ctx context.Context, accountID int64) ([]*claim.Claim, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM claims c
		WHERE c.creator_id = $1
		ORDER BY c.created_at DESC`, claimColumns)
	return r.queryMany(ctx, query, accountID)
}

func (r *claimRepository) ListBySupporter(ctx context.Context, accountID int64) ([]*claim.Claim, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM claims c
		JOIN claim_supporters cs ON cs.claim_id = c.id
		WHERE cs.account_id = $1
		ORDER BY cs.created_at DESC`, claimColumns)
	return r.queryMany(ctx, query, accountID)
}

func (r *claimRepository) SetStatus(ctx context.Context, id int64, status claim.Status) error {
	return r.execOnClaim(ctx, id,
		`UPDATE claims SET status = $2, updated_at = NOW() WHERE id = $1`, status)
}

func (r *claimRepository) SetDepartment(ctx context.Context, id, departmentID int64) error {
	return r.execOnClaim(ctx, id,
		`UPDATE claims SET department_id = $2, updated_at = NOW() WHERE id = $1`, departmentID)
}

func (r *claimRepository) Delete(ctx context.Context, id int64) error {
	return r.execOnClaim(ctx, id, `DELETE FROM claims WHERE id = $1`)
}

func (r *claimRepository) AddStatusChange(ctx context.Context, sc *claim.StatusChange) error {
	query := `
		INSERT INTO claim_status_history (claim_id, old_status, new_status, changed_by_id, changed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		sc.ClaimID, sc.OldStatus, sc.NewStatus, sc.ChangedByID, sc.ChangedAt,
	).Scan(&sc.ID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert status change")
	}
	return nil
}

func (r *claimRepository) ListStatusChanges(ctx context.Context, claimID int64) ([]*claim.StatusChange, error) {
	query := `
		SELECT id, claim_id, old_status, new_status, changed_by_id, changed_at
		FROM claim_status_history
		WHERE claim_id = $1
		ORDER BY changed_at DESC, id DESC`

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, claimID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list status changes")
	}
	defer rows.Close()

	var changes []*claim.StatusChange
	for rows.Next() {
		sc := &claim.StatusChange{}
		if err := rows.Scan(&sc.ID, &sc.ClaimID, &sc.OldStatus, &sc.NewStatus, &sc.ChangedByID, &sc.ChangedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan status change")
		}
		changes = append(changes, sc)
	}
	return changes, rows.Err()
}

func (r *claimRepository) DeleteStatusChanges(ctx context.Context, claimID int64) error {
	_, err := exec(ctx, r.db).ExecContext(ctx,
		`DELETE FROM claim_status_history WHERE claim_id = $1`, claimID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete status changes")
	}
	return nil
}

func (r *claimRepository) AddSupporter(ctx context.Context, claimID, accountID int64) error {
	_, err := exec(ctx, r.db).ExecContext(ctx,
		`INSERT INTO claim_supporters (claim_id, account_id) VALUES ($1, $2)`,
		claimID, accountID)
	if err != nil {
		if isUniqueViolation(err, constraintClaimSupportersPK) {
			return errors.New(errors.ErrCodeAlreadySupporting, "already supporting this claim")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to add supporter")
	}
	return nil
}

func (r *claimRepository) RemoveSupporter(ctx context.Context, claimID, accountID int64) error {
	res, err := exec(ctx, r.db).ExecContext(ctx,
		`DELETE FROM claim_supporters WHERE claim_id = $1 AND account_id = $2`,
		claimID, accountID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to remove supporter")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrCodeNotSupporting, "not supporting this claim")
	}
	return nil
}

func (r *claimRepository) IsSupporter(ctx context.Context, claimID, accountID int64) (bool, error) {
	var exists bool
	err := exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM claim_supporters WHERE claim_id = $1 AND account_id = $2)`,
		claimID, accountID).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to check supporter")
	}
	return exists, nil
}

func (r *claimRepository) ListSupporterIDs(ctx context.Context, claimID int64) ([]int64, error) {
	rows, err := exec(ctx, r.db).QueryContext(ctx,
		`SELECT account_id FROM claim_supporters WHERE claim_id = $1 ORDER BY created_at ASC`,
		claimID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list supporters")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan supporter")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *claimRepository) DeleteSupporters(ctx context.Context, claimID int64) error {
	_, err := exec(ctx, r.db).ExecContext(ctx,
		`DELETE FROM claim_supporters WHERE claim_id = $1`, claimID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete supporters")
	}
	return nil
}

func (r *claimRepository) AddTransfer(ctx context.Context, t *claim.Transfer) error {
	query := `
		INSERT INTO claim_transfers (claim_id, from_department_id, to_department_id, transferred_by_id, reason, transferred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		t.ClaimID, t.FromDepartmentID, t.ToDepartmentID, t.TransferredByID, t.Reason, t.TransferredAt,
	).Scan(&t.ID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert transfer")
	}
	return nil
}

func (r *claimRepository) ListTransfers(ctx context.Context, claimID int64) ([]*claim.Transfer, error) {
	query := `
		SELECT id, claim_id, from_department_id, to_department_id, transferred_by_id, reason, transferred_at
		FROM claim_transfers
		WHERE claim_id = $1
		ORDER BY transferred_at DESC, id DESC`

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, claimID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list transfers")
	}
	defer rows.Close()

	var transfers []*claim.Transfer
	for rows.Next() {
		t := &claim.Transfer{}
		if err := rows.Scan(&t.ID, &t.ClaimID, &t.FromDepartmentID, &t.ToDepartmentID, &t.TransferredByID, &t.Reason, &t.TransferredAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan transfer")
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

func (r *claimRepository) DeleteTransfers(ctx context.Context, claimID int64) error {
	_, err := exec(ctx, r.db).ExecContext(ctx,
		`DELETE FROM claim_transfers WHERE claim_id = $1`, claimID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete transfers")
	}
	return nil
}

func (r *claimRepository) CountByStatus(ctx context.Context, departmentIDs []int64) (claim.StatusCounts, error) {
	counts := claim.StatusCounts{}
	for _, s := range claim.AllStatuses() {
		counts[s] = 0
	}
	if departmentIDs != nil && len(departmentIDs) == 0 {
		return counts, nil
	}

	query := `SELECT status, COUNT(*) FROM claims`
	var args []any
	if departmentIDs != nil {
		query += ` WHERE department_id = ANY($1)`
		args = append(args, pq.Array(departmentIDs))
	}
	query += ` GROUP BY status`

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count claims by status")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status claim.Status
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan status count")
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *claimRepository) CountByDepartmentAndStatus(ctx context.Context, departmentIDs []int64) (map[int64]claim.StatusCounts, error) {
	result := map[int64]claim.StatusCounts{}
	if departmentIDs != nil && len(departmentIDs) == 0 {
		return result, nil
	}

	query := `SELECT department_id, status, COUNT(*) FROM claims`
	var args []any
	if departmentIDs != nil {
		query += ` WHERE department_id = ANY($1)`
		args = append(args, pq.Array(departmentIDs))
		// Departments without claims still appear in the dashboard.
		for _, id := range departmentIDs {
			result[id] = claim.StatusCounts{}
		}
	}
	query += ` GROUP BY department_id, status`

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count claims by department")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			deptID int64
			status claim.Status
			n      int64
		)
		if err := rows.Scan(&deptID, &status, &n); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan department count")
		}
		if result[deptID] == nil {
			result[deptID] = claim.StatusCounts{}
		}
		result[deptID][status] = n
	}
	return result, rows.Err()
}

func (r *claimRepository) ListDetails(ctx context.Context, departmentIDs []int64) ([]string, error) {
	if departmentIDs != nil && len(departmentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT detail FROM claims`
	var args []any
	if departmentIDs != nil {
		query += ` WHERE department_id = ANY($1)`
		args = append(args, pq.Array(departmentIDs))
	}

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list claim details")
	}
	defer rows.Close()

	var details []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan claim detail")
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *claimRepository) scanOne(row *sql.Row) (*claim.Claim, error) {
	c := &claim.Claim{}
	err := row.Scan(
		&c.ID, &c.Detail, &c.Status, &c.ImagePath, &c.DepartmentID, &c.CreatorID,
		&c.IdempotencyKey, &c.CreatedAt, &c.UpdatedAt, &c.SupportersCount,
	)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan claim")
	}
	return c, nil
}

func (r *claimRepository) queryMany(ctx context.Context, query string, args ...any) ([]*claim.Claim, error) {
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query claims")
	}
	defer rows.Close()

	var claims []*claim.Claim
	for rows.Next() {
		c := &claim.Claim{}
		if err := rows.Scan(
			&c.ID, &c.Detail, &c.Status, &c.ImagePath, &c.DepartmentID, &c.CreatorID,
			&c.IdempotencyKey, &c.CreatedAt, &c.UpdatedAt, &c.SupportersCount,
		); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan claim")
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (r *claimRepository) execOnClaim(ctx context.Context, id int64, query string, extra ...any) error {
	args := append([]any{id}, extra...)
	res, err := exec(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update claim")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrCodeClaimNotFound, "claim not found")
	}
	return nil
}
