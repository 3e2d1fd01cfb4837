package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/SolBenven/proyecto-final/internal/domain/notification"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository builds the postgres-backed notification repository.
func NewNotificationRepository(db *sql.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, statusChangeID int64, accountIDs []int64) error {
	if len(accountIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_notifications (account_id, status_change_id)
		SELECT unnest($1::bigint[]), $2`

	_, err := exec(ctx, r.db).ExecContext(ctx, query, pq.Array(accountIDs), statusChangeID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert notifications")
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*notification.Notification, error) {
	n := &notification.Notification{}
	err := exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, account_id, status_change_id, created_at, read_at
		 FROM user_notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.AccountID, &n.StatusChangeID, &n.CreatedAt, &n.ReadAt)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeNotificationNotFound, "notification not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan notification")
	}
	return n, nil
}

func (r *notificationRepository) ListPending(ctx context.Context, accountID int64) ([]*notification.Detail, error) {
	query := `
		SELECT n.id, n.account_id, n.status_change_id, n.created_at, n.read_at,
		       c.id, c.detail, h.old_status, h.new_status,
		       a.first_name || ' ' || a.last_name, h.changed_at
		FROM user_notifications n
		JOIN claim_status_history h ON h.id = n.status_change_id
		JOIN claims c ON c.id = h.claim_id
		JOIN accounts a ON a.id = h.changed_by_id
		WHERE n.account_id = $1 AND n.read_at IS NULL
		ORDER BY n.created_at DESC, n.id DESC`

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list notifications")
	}
	defer rows.Close()

	var details []*notification.Detail
	for rows.Next() {
		d := &notification.Detail{}
		if err := rows.Scan(
			&d.ID, &d.AccountID, &d.StatusChangeID, &d.CreatedAt, &d.ReadAt,
			&d.ClaimID, &d.ClaimDetail, &d.OldStatus, &d.NewStatus,
			&d.ChangedByName, &d.ChangedAt,
		); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan notification")
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := exec(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_notifications WHERE account_id = $1 AND read_at IS NULL`,
		accountID).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count notifications")
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	_, err := exec(ctx, r.db).ExecContext(ctx,
		`UPDATE user_notifications SET read_at = $2 WHERE id = $1 AND read_at IS NULL`,
		id, readAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to mark notification read")
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, accountID int64, readAt time.Time) (int64, error) {
	res, err := exec(ctx, r.db).ExecContext(ctx,
		`UPDATE user_notifications SET read_at = $2 WHERE account_id = $1 AND read_at IS NULL`,
		accountID, readAt)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to mark notifications read")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count marked notifications")
	}
	return affected, nil
}

func (r *notificationRepository) DeleteForClaim(ctx context.Context, claimID int64) ([]int64, error) {
	query := `
		DELETE FROM user_notifications
		WHERE status_change_id IN (
			SELECT id FROM claim_status_history WHERE claim_id = $1
		)
		RETURNING account_id`

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, claimID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete notifications")
	}
	defer rows.Close()

	seen := map[int64]struct{}{}
	var accountIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan deleted notification")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		accountIDs = append(accountIDs, id)
	}
	return accountIDs, rows.Err()
}
