// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/groupsplit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateUser saves the user's display name and stamps UpdatedAt.
	UpdateUser(ctx context.Context, user *models.User) error

	// GetUsersByUsernames returns the registered accounts among usernames,
	// keyed by username. Unregistered names are omitted.
	GetUsersByUsernames(ctx context.Context, usernames []string) (map[string]*models.User, error)
}

// GroupStore persists groups and their member lists.
type GroupStore interface {
	// CreateGroup persists a new group. ID and CreatedAt are assigned when empty,
	// the creator is added to Members, and duplicate members are dropped.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForMember returns the groups username belongs to, newest first.
	ListGroupsForMember(ctx context.Context, username string) ([]*models.Group, error)

	// UpdateGroup updates the name and emoji of an existing group.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// AddGroupMembers appends members that are not already in the group.
	AddGroupMembers(ctx context.Context, groupID string, members []string) error

	// RemoveGroupMember removes a single member from the group. A non-nil
	// canLeave is called with the group's expenses in the same transaction;
	// if it returns an error the member stays and that error is returned.
	RemoveGroupMember(ctx context.Context, groupID, member string, canLeave func([]*models.Expense) error) error

	// DeleteGroup removes a group and all of its expenses.
	DeleteGroup(ctx context.Context, groupID string) error
}

// ExpenseStore persists expenses with their ordered payer and participant lists.
type ExpenseStore interface {
	// CreateExpense persists a new expense. ID and CreatedAt are assigned when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns every expense in a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, expenseID string) error
}
