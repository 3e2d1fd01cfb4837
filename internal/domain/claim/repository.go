package claim

import "context"

// ListFilter narrows claim listings.  Nil fields mean "no filter";
// DepartmentIDs as an empty non-nil slice means "nothing visible" and yields
// an empty result.
type ListFilter struct {
	DepartmentIDs []int64
	Status        *Status
}

// Repository provides claim persistence.  Methods participate in a
// surrounding transaction when the context carries one (see TxRunner).
type Repository interface {
	// Create persists a new claim and fills in its generated ID.  A
	// duplicate idempotency key surfaces as a COMMON_006 conflict.
	Create(ctx context.Context, c *Claim) error

	// GetByID returns the claim or a CLAIM_001 error.
	GetByID(ctx context.Context, id int64) (*Claim, error)

	// GetByIdempotencyKey returns the claim created under key, or a
	// CLAIM_001 error when no such claim exists.
	GetByIdempotencyKey(ctx context.Context, key string) (*Claim, error)

	// ListPending returns pending claims newest first, optionally narrowed
	// to one department.
	ListPending(ctx context.Context, departmentID *int64) ([]*Claim, error)

	// List returns claims newest first under the given filter.
	List(ctx context.Context, filter ListFilter) ([]*Claim, error)

	// ListByCreator returns the claims an account filed, newest first.
	ListByCreator(ctx context.Context, accountID int64) ([]*Claim, error)

	// ListBySupporter returns the claims an account supports, most recently
	// supported first.
	ListBySupporter(ctx context.Context, accountID int64) ([]*Claim, error)

	// SetStatus updates the lifecycle state of one claim.
	SetStatus(ctx context.Context, id int64, status Status) error

	// SetDepartment reassigns a claim to another department.
	SetDepartment(ctx context.Context, id int64, departmentID int64) error

	// Delete removes the claim row itself.  Dependent rows must already be
	// gone; the lifecycle service owns the ordering.
	Delete(ctx context.Context, id int64) error

	// AddStatusChange appends a history entry and fills in its ID.
	AddStatusChange(ctx context.Context, sc *StatusChange) error

	// ListStatusChanges returns a claim's history, newest first.
	ListStatusChanges(ctx context.Context, claimID int64) ([]*StatusChange, error)

	// DeleteStatusChanges removes a claim's entire history.
	DeleteStatusChanges(ctx context.Context, claimID int64) error

	// AddSupporter links an account to a claim.  A duplicate link surfaces
	// as a CLAIM_006 error.
	AddSupporter(ctx context.Context, claimID, accountID int64) error

	// RemoveSupporter unlinks an account; a missing link surfaces as a
	// CLAIM_007 error.
	RemoveSupporter(ctx context.Context, claimID, accountID int64) error

	// IsSupporter reports whether the account supports the claim.
	IsSupporter(ctx context.Context, claimID, accountID int64) (bool, error)

	// ListSupporterIDs returns supporter account IDs in adhesion order.
	ListSupporterIDs(ctx context.Context, claimID int64) ([]int64, error)

	// DeleteSupporters removes every supporter link of a claim.
	DeleteSupporters(ctx context.Context, claimID int64) error

	// AddTransfer appends a transfer record and fills in its ID.
	AddTransfer(ctx context.Context, t *Transfer) error

	// ListTransfers returns a claim's transfer history, newest first.
	ListTransfers(ctx context.Context, claimID int64) ([]*Transfer, error)

	// DeleteTransfers removes every transfer record of a claim.
	DeleteTransfers(ctx context.Context, claimID int64) error

	// CountByStatus returns per-status counts.  departmentIDs follows the
	// ListFilter convention: nil means all departments, empty means none.
	CountByStatus(ctx context.Context, departmentIDs []int64) (StatusCounts, error)

	// CountByDepartmentAndStatus returns per-department per-status counts
	// for the named departments.
	CountByDepartmentAndStatus(ctx context.Context, departmentIDs []int64) (map[int64]StatusCounts, error)

	// ListDetails returns the raw claim texts under the filter, for the
	// keyword analytics.
	ListDetails(ctx context.Context, departmentIDs []int64) ([]string, error)
}

// TxRunner executes fn inside a database transaction.  Repository calls made
// with the context fn receives join that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
