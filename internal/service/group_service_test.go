package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "Alice")
	env.register(t, "bob", "Bobby")

	resp, err := env.groups.CreateGroup(context.Background(), withToken(alice, &api.CreateGroupRequest{
		Name:    "  Roommates ",
		Emoji:   "🏠",
		Members: []string{"Bob", "charlie", "bob", ""},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", group.Name)
	}
	if group.CreatedBy != "alice" {
		t.Errorf("created_by: expected 'alice', got '%s'", group.CreatedBy)
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}

	want := []struct {
		username    string
		displayName string
		registered  bool
	}{
		{"alice", "Alice", true},
		{"bob", "Bobby", true},
		{"charlie", "charlie", false},
	}
	if len(group.Members) != len(want) {
		t.Fatalf("members: expected %d, got %d", len(want), len(group.Members))
	}
	for i, w := range want {
		m := group.Members[i]
		if m.Username != w.username || m.DisplayName != w.displayName || m.Registered != w.registered {
			t.Errorf("members[%d] = %+v, want %+v", i, m, w)
		}
	}
}

func TestCreateGroup_EmptyName(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "Alice")

	_, err := env.groups.CreateGroup(context.Background(), withToken(alice, &api.CreateGroupRequest{Name: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetGroup(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "Alice")
	bob := env.register(t, "bob", "Bob")
	eve := env.register(t, "eve", "Eve")
	group := env.createGroup(t, alice, "Work Lunch", "bob")

	resp, err := env.groups.GetGroup(context.Background(), withToken(bob, &api.GetGroupRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if resp.Msg.Group.Name != "Work Lunch" {
		t.Errorf("name: expected 'Work Lunch', got '%s'", resp.Msg.Group.Name)
	}

	t.Run("non-member is denied", func(t *testing.T) {
		_, err := env.groups.GetGroup(context.Background(), withToken(eve, &api.GetGroupRequest{GroupID: group.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := env.groups.GetGroup(context.Background(), withToken(alice, &api.GetGroupRequest{GroupID: "nonexistent-id"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := env.groups.GetGroup(context.Background(), withToken(alice, &api.GetGroupRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "Alice")
	bob := env.register(t, "bob", "Bob")

	env.createGroup(t, alice, "Trip", "bob")
	env.createGroup(t, alice, "Flat")
	env.createGroup(t, bob, "Gym")

	resp, err := env.groups.ListGroups(context.Background(), withToken(bob, &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Fatalf("groups: expected 2, got %d", len(resp.Msg.Groups))
	}
	// Newest first
	if resp.Msg.Groups[0].Name != "Gym" || resp.Msg.Groups[1].Name != "Trip" {
		t.Errorf("order: got %s, %s", resp.Msg.Groups[0].Name, resp.Msg.Groups[1].Name)
	}

	carol := env.register(t, "carol", "Carol")
	empty, err := env.groups.ListGroups(context.Background(), withToken(carol, &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(empty.Msg.Groups) != 0 {
		t.Errorf("groups: expected 0, got %d", len(empty.Msg.Groups))
	}
}

func TestUpdateGroup(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "Alice")
	eve := env.register(t, "eve", "Eve")
	group := env.createGroup(t, alice, "Original", "bob")

	resp, err := env.groups.UpdateGroup(context.Background(), withToken(alice, &api.UpdateGroupRequest{
		GroupID: group.ID,
		Name:    "Updated",
		Emoji:   "✈️",
	}))
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if resp.Msg.Group.Name != "Updated" || resp.Msg.Group.Emoji != "✈️" {
		t.Errorf("got %s %s", resp.Msg.Group.Name, resp.Msg.Group.Emoji)
	}
	if resp.Msg.Group.CreatedAt != group.CreatedAt {
		t.Error("CreatedAt changed on update")
	}
	if len(resp.Msg.Group.Members) != 2 {
		t.Errorf("members: expected 2, got %d", len(resp.Msg.Group.Members))
	}

	_, err = env.groups.UpdateGroup(context.Background(), withToken(eve, &api.UpdateGroupRequest{
		GroupID: group.ID,
		Name:    "Hijacked",
	}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.groups.UpdateGroup(context.Background(), withToken(alice, &api.UpdateGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestAddMembers(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice", "Alice")
	group := env.createGroup(t, alice, "Trip", "bob")

	resp, err := env.groups.AddMembers(context.Background(), withToken(alice, &api.AddMembersRequest{
		GroupID: group.ID,
		Members: []string{"bob", "Dave", "erin"},
	}))
	if err != nil {
		t.Fatalf("AddMembers failed: %v", err)
	}
	var names []string
	for _, m := range resp.Msg.Group.Members {
		names = append(names, m.Username)
	}
	want := []string{"alice", "bob", "dave", "erin"}
	if len(names) != len(want) {
		t.Fatalf("members = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("members[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	_, err = env.groups.AddMembers(context.Background(), withToken(alice, &api.AddMembersRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestRemoveMember(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "Alice")
	group := env.createGroup(t, alice, "Trip", "bob", "dave")

	// bob owes alice 50
	env.addExpense(t, alice, group.ID, 100, []string{"alice"}, []string{"alice", "bob"})

	t.Run("member with a balance stays", func(t *testing.T) {
		_, err := env.groups.RemoveMember(ctx, withToken(alice, &api.RemoveMemberRequest{GroupID: group.ID, Member: "bob"}))
		assertCode(t, err, connect.CodeFailedPrecondition)

		resp, err := env.groups.GetGroup(ctx, withToken(alice, &api.GetGroupRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(resp.Msg.Group.Members) != 3 {
			t.Errorf("members: expected 3 after refused removal, got %d", len(resp.Msg.Group.Members))
		}
	})

	t.Run("settled member is removed", func(t *testing.T) {
		resp, err := env.groups.RemoveMember(ctx, withToken(alice, &api.RemoveMemberRequest{GroupID: group.ID, Member: "dave"}))
		if err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if len(resp.Msg.Group.Members) != 2 {
			t.Errorf("members: expected 2, got %d", len(resp.Msg.Group.Members))
		}
	})

	t.Run("member can leave after settling up", func(t *testing.T) {
		_, err := env.expenses.SettleUp(ctx, withToken(alice, &api.SettleUpRequest{
			GroupID: group.ID, From: "bob", To: "alice", Amount: 50,
		}))
		if err != nil {
			t.Fatalf("SettleUp failed: %v", err)
		}
		if _, err := env.groups.RemoveMember(ctx, withToken(alice, &api.RemoveMemberRequest{GroupID: group.ID, Member: "bob"})); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := env.groups.RemoveMember(ctx, withToken(alice, &api.RemoveMemberRequest{GroupID: group.ID, Member: "zed"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("creator cannot be removed", func(t *testing.T) {
		_, err := env.groups.RemoveMember(ctx, withToken(alice, &api.RemoveMemberRequest{GroupID: group.ID, Member: "alice"}))
		assertCode(t, err, connect.CodeFailedPrecondition)
	})
}

func TestDeleteGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "Alice")
	bob := env.register(t, "bob", "Bob")
	group := env.createGroup(t, alice, "To Delete", "bob")

	_, err := env.groups.DeleteGroup(ctx, withToken(bob, &api.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := env.groups.DeleteGroup(ctx, withToken(alice, &api.DeleteGroupRequest{GroupID: group.ID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err = env.groups.GetGroup(ctx, withToken(alice, &api.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.groups.DeleteGroup(ctx, withToken(alice, &api.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)
}
