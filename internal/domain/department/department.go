// Package department defines the organizational units that claims are routed
// to and the lookups the routing pipeline depends on.
package department

import (
	"context"
	"time"
)

// Department is an organizational unit that resolves claims.  Name is the
// stable internal identifier used by the classifier labels; DisplayName is
// what users see.
type Department struct {
	ID                     int64
	Name                   string
	DisplayName            string
	IsTechnicalSecretariat bool
	CreatedAt              time.Time
}

// Repository provides department persistence.
type Repository interface {
	// GetByID returns the department or a DEPT_001 error.
	GetByID(ctx context.Context, id int64) (*Department, error)

	// GetByName looks a department up by internal name, e.g. "mantenimiento".
	GetByName(ctx context.Context, name string) (*Department, error)

	// GetTechnicalSecretariat returns the fallback department.
	GetTechnicalSecretariat(ctx context.Context) (*Department, error)

	// List returns every department ordered by display name.
	List(ctx context.Context) ([]*Department, error)

	// ListByIDs returns the named departments ordered by display name.
	// An empty input yields an empty result.
	ListByIDs(ctx context.Context, ids []int64) ([]*Department, error)

	// Create persists a new department and fills in its generated ID.
	Create(ctx context.Context, d *Department) error
}
