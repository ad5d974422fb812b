// internal/authz/authz.go
package authz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Principal is the authenticated caller as seen by services. A zero
// Principal is an anonymous caller.
type Principal struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
}

func (p Principal) Authenticated() bool {
	return p.UserID != uuid.Nil
}

// CanAccess is the single ownership predicate used across every entity:
// staff may touch any record, everyone else only records owned by their own
// user identity.
func CanAccess(p Principal, ownerUserID uuid.UUID) bool {
	return p.IsStaff || (p.Authenticated() && p.UserID == ownerUserID)
}

// ScopeToOwner narrows a list query the same way: staff sees every row,
// other callers only rows whose ownerColumn matches their user id.
func ScopeToOwner(db *gorm.DB, p Principal, ownerColumn string) *gorm.DB {
	if p.IsStaff {
		return db
	}
	return db.Where(ownerColumn+" = ?", p.UserID)
}
