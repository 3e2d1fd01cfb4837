// Package account defines platform accounts and the actor model used for
// authorization decisions.  An account is one row regardless of kind; the
// kind-specific attributes live in a variant profile attached to it.
package account

import (
	"fmt"
	"time"
)

// Cloister is the constituency an end user belongs to.
type Cloister string

const (
	CloisterStudent Cloister = "estudiante"
	CloisterTeacher Cloister = "docente"
	CloisterStaff   Cloister = "PAyS"
)

// AdminRole is the role of an administrative account.
type AdminRole string

const (
	// RoleDepartmentHead manages claims of exactly one department.
	RoleDepartmentHead AdminRole = "jefe_departamento"
	// RoleTechnicalSecretary manages claims of every department and is the
	// only role allowed to transfer claims.
	RoleTechnicalSecretary AdminRole = "secretario_tecnico"
)

// Kind discriminates the account variants.
type Kind string

const (
	KindEndUser Kind = "end_user"
	KindAdmin   Kind = "admin"
)

// Account is the common identity shared by every account kind.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	Kind         Kind
	CreatedAt    time.Time

	// Exactly one profile is set, matching Kind.
	EndUser *EndUserProfile
	Admin   *AdminProfile
}

// EndUserProfile carries the attributes of claim creators and supporters.
type EndUserProfile struct {
	Cloister Cloister
}

// AdminProfile carries the attributes of claim managers.  DepartmentID is set
// for department heads and zero for the technical secretary.
type AdminProfile struct {
	Role         AdminRole
	DepartmentID int64
}

// FullName renders the display name the way the rest of the platform shows it.
func (a *Account) FullName() string {
	switch a.Kind {
	case KindAdmin:
		if a.Admin != nil {
			return fmt.Sprintf("%s %s - %s", a.FirstName, a.LastName, a.Admin.Role)
		}
	case KindEndUser:
		if a.EndUser != nil {
			return fmt.Sprintf("%s %s (%s)", a.FirstName, a.LastName, a.EndUser.Cloister)
		}
	}
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

// Actor is the authenticated identity attached to a request.  It is a tagged
// union: Kind selects which of the role fields are meaningful.
type Actor struct {
	Kind      Kind
	AccountID int64

	// Role and DepartmentID are meaningful only when Kind is KindAdmin.
	Role         AdminRole
	DepartmentID int64
}

// IsAdmin reports whether the actor is an administrative account.
func (a Actor) IsAdmin() bool {
	return a.Kind == KindAdmin
}

// IsTechnicalSecretary reports whether the actor holds the global-scope role.
func (a Actor) IsTechnicalSecretary() bool {
	return a.Kind == KindAdmin && a.Role == RoleTechnicalSecretary
}

// IsDepartmentHead reports whether the actor manages a single department.
func (a Actor) IsDepartmentHead() bool {
	return a.Kind == KindAdmin && a.Role == RoleDepartmentHead
}

// ActorFor derives the request actor from a loaded account.
func ActorFor(acc *Account) Actor {
	actor := Actor{Kind: acc.Kind, AccountID: acc.ID}
	if acc.Kind == KindAdmin && acc.Admin != nil {
		actor.Role = acc.Admin.Role
		actor.DepartmentID = acc.Admin.DepartmentID
	}
	return actor
}
