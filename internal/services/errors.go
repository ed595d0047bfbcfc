package services

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors shared across services. Handlers translate these into
// redirects or user-facing messages.
var (
	// ErrNotFound covers missing rows and ownership mismatches; the
	// handlers answer it with a silent redirect to the safe default view.
	ErrNotFound = errors.New("not found")

	// ErrNotInCatalog signals that an inventory add named an ingredient
	// the catalog does not know; the handler redirects into the
	// catalog-creation flow.
	ErrNotInCatalog = errors.New("ingredient not in catalog")

	// ErrInvalidLogin means no user matched the submitted username/email.
	ErrInvalidLogin = errors.New("invalid username or email")

	// ErrIncorrectPassword means the user exists but the password hash
	// check failed.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrEmptyInventory means a recipe lookup was attempted with no
	// inventory rows to build a query from.
	ErrEmptyInventory = errors.New("inventory is empty")
)

// FieldErrors is a validation result keyed by form field name. It is a
// plain value decoupled from any UI binding; handlers serialize it next
// to the data needed to re-render the submitting view.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
