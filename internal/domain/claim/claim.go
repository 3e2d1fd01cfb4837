// Package claim defines the claim aggregate and its lifecycle: creation,
// status changes with per-user notification fan-out, supporter management,
// transfers between departments, and ordered deletion.
package claim

import (
	"time"

	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Status is the lifecycle state of a claim.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusInvalid    Status = "INVALID"
)

// AllStatuses lists every status in display order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusResolved, StatusInvalid}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusInvalid:
		return true
	}
	return false
}

// DisplayName returns the Spanish label shown to users.
func (s Status) DisplayName() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusInProgress:
		return "En proceso"
	case StatusResolved:
		return "Resuelto"
	case StatusInvalid:
		return "Inválido"
	}
	return string(s)
}

// ParseStatus converts a wire value into a Status or a CLAIM_004 error.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", errors.Newf(errors.ErrCodeStatusInvalid, "unknown claim status %q", raw)
	}
	return s, nil
}

// Claim is a problem report filed by an end user and routed to a department.
type Claim struct {
	ID             int64
	Detail         string
	Status         Status
	ImagePath      *string
	DepartmentID   int64
	CreatorID      int64
	IdempotencyKey *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// SupportersCount is filled by list queries; it is not authoritative
	// inside transactions.
	SupportersCount int64
}

// StatusChange is one entry in a claim's status history.
type StatusChange struct {
	ID          int64
	ClaimID     int64
	OldStatus   Status
	NewStatus   Status
	ChangedByID int64
	ChangedAt   time.Time
}

// Supporter links an end user backing a claim they did not create.
type Supporter struct {
	ClaimID   int64
	AccountID int64
	CreatedAt time.Time
}

// Transfer records a claim moving from one department to another.
type Transfer struct {
	ID               int64
	ClaimID          int64
	FromDepartmentID int64
	ToDepartmentID   int64
	TransferredByID  int64
	Reason           *string
	TransferredAt    time.Time
}

// StatusCounts maps every status to its claim count, including zeroes.
type StatusCounts map[Status]int64

// DashboardCounts aggregates the headline numbers of the admin dashboard.
type DashboardCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Invalid    int64 `json:"invalid"`
}

// CountsFromStatuses folds per-status counts into dashboard numbers.
func CountsFromStatuses(counts StatusCounts) DashboardCounts {
	dc := DashboardCounts{
		Pending:    counts[StatusPending],
		InProgress: counts[StatusInProgress],
		Resolved:   counts[StatusResolved],
		Invalid:    counts[StatusInvalid],
	}
	dc.Total = dc.Pending + dc.InProgress + dc.Resolved + dc.Invalid
	return dc
}
