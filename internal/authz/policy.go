// Package authz holds the single permission rule set shared by every
// handler: who may read or mutate a resource, given who owns it.
package authz

import (
	"errors"

	"github.com/huellitas/huellitas-api/internal/model"
)

// ErrForbidden is returned when a valid actor lacks permission.
var ErrForbidden = errors.New("no tiene permisos para realizar esta accion")

// Rule identifies a permission rule from the policy table.
type Rule int

const (
	// Public requires no actor; result sets are filtered instead.
	Public Rule = iota
	// SelfOrAdmin permits the resource owner or an admin.
	SelfOrAdmin
	// AdminOnly permits admins exclusively.
	AdminOnly
)

// Allow evaluates a rule for an actor against a resource owner. A nil actor
// only ever passes the Public rule. On deny the caller must not mutate
// anything and should surface ErrForbidden as a 403.
func Allow(actor *model.User, ownerID int64, rule Rule) error {
	switch rule {
	case Public:
		return nil
	case SelfOrAdmin:
		if actor != nil && (actor.ID == ownerID || actor.IsAdmin()) {
			return nil
		}
	case AdminOnly:
		if actor != nil && actor.IsAdmin() {
			return nil
		}
	}
	return ErrForbidden
}
