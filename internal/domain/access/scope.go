// Package access centralizes the authorization rules for administrative
// claim management.  The rules are pure functions over the request actor so
// they can be applied identically by services and handlers.
package access

import (
	"github.com/SolBenven/proyecto-final/internal/domain/account"
)

// Scope describes which departments an actor may see and manage.
type Scope struct {
	// All grants visibility over every department.
	All bool

	// DepartmentID is the single visible department when All is false.
	// Zero means no visibility at all.
	DepartmentID int64
}

// ScopeFor computes the department scope of an actor.
//
//   - Technical secretary: every department.
//   - Department head: exactly their own department.
//   - Anything else (end users, admins without a role): nothing.
func ScopeFor(actor account.Actor) Scope {
	switch {
	case actor.IsTechnicalSecretary():
		return Scope{All: true}
	case actor.IsDepartmentHead():
		return Scope{DepartmentID: actor.DepartmentID}
	default:
		return Scope{}
	}
}

// Allows reports whether the scope covers departmentID.
func (s Scope) Allows(departmentID int64) bool {
	if s.All {
		return true
	}
	return s.DepartmentID != 0 && s.DepartmentID == departmentID
}

// Empty reports whether the scope covers nothing.
func (s Scope) Empty() bool {
	return !s.All && s.DepartmentID == 0
}

// CanManage reports whether the actor may view and change the state of a
// claim belonging to claimDepartmentID.
func CanManage(actor account.Actor, claimDepartmentID int64) bool {
	return ScopeFor(actor).Allows(claimDepartmentID)
}

// CanTransfer reports whether the actor may move claims between departments.
// Transfers are reserved for the technical secretary.
func CanTransfer(actor account.Actor) bool {
	return actor.IsTechnicalSecretary()
}
