package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "groupsplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and adds creator", func(t *testing.T) {
		group := &models.Group{
			Name:      "Roommates",
			Emoji:     "🏠",
			CreatedBy: "alice",
			Members:   []string{"bob", "carol", "bob"},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		want := []string{"alice", "bob", "carol"}
		if len(got.Members) != len(want) {
			t.Fatalf("Members = %v, want %v", got.Members, want)
		}
		for i := range want {
			if got.Members[i] != want[i] {
				t.Errorf("Members[%d] = %s, want %s", i, got.Members[i], want[i])
			}
		}
		if got.Emoji != "🏠" || got.Name != "Roommates" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddGroupMembers skips existing members", func(t *testing.T) {
		group := &models.Group{Name: "Trip", CreatedBy: "alice", Members: []string{"bob"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if err := store.AddGroupMembers(ctx, group.ID, []string{"bob", "dave", "erin"}); err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Members) != 4 || got.Members[3] != "erin" {
			t.Errorf("Members = %v, want [alice bob dave erin]", got.Members)
		}

		if err := store.AddGroupMembers(ctx, "nonexistent-id", []string{"x"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RemoveGroupMember", func(t *testing.T) {
		group := &models.Group{Name: "Lunch", CreatedBy: "alice", Members: []string{"bob"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if err := store.RemoveGroupMember(ctx, group.ID, "bob", nil); err != nil {
			t.Fatalf("RemoveGroupMember failed: %v", err)
		}
		if err := store.RemoveGroupMember(ctx, group.ID, "bob", nil); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second removal, got %v", err)
		}
	})

	t.Run("ListGroupsForMember", func(t *testing.T) {
		groups, err := store.ListGroupsForMember(ctx, "bob")
		if err != nil {
			t.Fatalf("ListGroupsForMember failed: %v", err)
		}
		// Roommates and Trip; bob left Lunch
		if len(groups) != 2 {
			t.Fatalf("got %d groups, want 2", len(groups))
		}
		for _, g := range groups {
			if !g.HasMember("bob") {
				t.Errorf("group %s does not list bob: %v", g.Name, g.Members)
			}
		}

		none, err := store.ListGroupsForMember(ctx, "nobody")
		if err != nil {
			t.Fatalf("ListGroupsForMember failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("got %d groups for nobody, want 0", len(none))
		}
	})

	t.Run("UpdateGroup and DeleteGroup", func(t *testing.T) {
		group := &models.Group{Name: "Old", CreatedBy: "alice"}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		group.Name = "New"
		group.Emoji = "✨"
		if err := store.UpdateGroup(ctx, group); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "New" || got.Emoji != "✨" {
			t.Errorf("got %s %s, want New ✨", got.Name, got.Emoji)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if err := store.UpdateGroup(ctx, group); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Flat", CreatedBy: "alice", Members: []string{"bob", "carol"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("CreateExpense and GetExpense keep list order", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:      group.ID,
			Title:        "Groceries",
			Amount:       60,
			PaidBy:       []string{"carol", "alice"},
			Participants: []string{"carol", "bob", "alice"},
			CreatedBy:    "alice",
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" || expense.CreatedAt == 0 {
			t.Fatalf("Expected ID and CreatedAt to be set, got %+v", expense)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Title != "Groceries" || got.Amount != 60 || got.GroupID != group.ID {
			t.Errorf("got %+v", got)
		}
		if len(got.PaidBy) != 2 || got.PaidBy[0] != "carol" || got.PaidBy[1] != "alice" {
			t.Errorf("PaidBy = %v, want [carol alice]", got.PaidBy)
		}
		if len(got.Participants) != 3 || got.Participants[1] != "bob" {
			t.Errorf("Participants = %v, want [carol bob alice]", got.Participants)
		}
	})

	t.Run("CreateExpense rejects unknown group", func(t *testing.T) {
		err := store.CreateExpense(ctx, &models.Expense{
			GroupID:      "nonexistent-id",
			Title:        "Orphan",
			Amount:       1,
			PaidBy:       []string{"alice"},
			Participants: []string{"alice"},
		})
		if err == nil {
			t.Error("Expected foreign key error, got nil")
		}
	})

	t.Run("ListExpensesByGroup newest first", func(t *testing.T) {
		second := &models.Expense{
			GroupID:      group.ID,
			Title:        "Rent",
			Amount:       900,
			PaidBy:       []string{"bob"},
			Participants: []string{"alice", "bob", "carol"},
			CreatedBy:    "bob",
		}
		if err := store.CreateExpense(ctx, second); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("got %d expenses, want 2", len(expenses))
		}
		if expenses[0].Title != "Rent" {
			t.Errorf("expenses[0] = %s, want Rent", expenses[0].Title)
		}
		for _, e := range expenses {
			if len(e.PaidBy) == 0 || len(e.Participants) == 0 {
				t.Errorf("expense %s missing names: %+v", e.Title, e)
			}
		}
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		id := expenses[0].ID
		if err := store.DeleteExpense(ctx, id); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteExpense(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("DeleteGroup cascades to expenses", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 0 {
			t.Errorf("got %d expenses after group delete, want 0", len(expenses))
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.CreateUser(ctx, models.NewUser("alice", "Other", "hash")); err == nil {
		t.Error("Expected duplicate username to fail")
	}

	byName, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("ID = %s, want %s", byName.ID, user.ID)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.DisplayName != "Alice" {
		t.Errorf("DisplayName = %s, want Alice", byID.DisplayName)
	}

	if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	users, err := store.GetUsersByUsernames(ctx, []string{"alice", "ghost"})
	if err != nil {
		t.Fatalf("GetUsersByUsernames failed: %v", err)
	}
	if len(users) != 1 || users["alice"] == nil {
		t.Errorf("got %v, want only alice", users)
	}
}

func TestSQLiteStore_UpdateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice", "Alice", "hash")
	user.CreatedAt, user.UpdatedAt = 1000, 1000
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user.DisplayName = "Ally"
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	got, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got.DisplayName != "Ally" {
		t.Errorf("DisplayName = %s, want Ally", got.DisplayName)
	}
	if got.UpdatedAt <= 1000 {
		t.Errorf("UpdatedAt = %d, want it bumped", got.UpdatedAt)
	}
	if got.CreatedAt != 1000 {
		t.Errorf("CreatedAt = %d, want 1000", got.CreatedAt)
	}

	ghost := models.NewUser("ghost", "", "hash")
	if err := store.UpdateUser(ctx, ghost); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_RemoveGroupMemberGuard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Dinner", CreatedBy: "alice", Members: []string{"bob"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	expense := &models.Expense{
		GroupID:      group.ID,
		Title:        "Pizza",
		Amount:       20,
		PaidBy:       []string{"alice"},
		Participants: []string{"alice", "bob"},
		CreatedBy:    "alice",
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	errBlocked := errors.New("blocked")
	var seen []*models.Expense
	err := store.RemoveGroupMember(ctx, group.ID, "bob", func(expenses []*models.Expense) error {
		seen = expenses
		return errBlocked
	})
	if !errors.Is(err, errBlocked) {
		t.Fatalf("error = %v, want the guard's error", err)
	}
	if len(seen) != 1 || len(seen[0].Participants) != 2 {
		t.Errorf("guard saw %+v, want the pizza with both participants", seen)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if !got.HasMember("bob") {
		t.Errorf("bob removed despite the guard: %v", got.Members)
	}

	if err := store.RemoveGroupMember(ctx, group.ID, "bob", func([]*models.Expense) error { return nil }); err != nil {
		t.Fatalf("RemoveGroupMember failed: %v", err)
	}
	got, err = store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.HasMember("bob") {
		t.Errorf("bob still listed: %v", got.Members)
	}
}
