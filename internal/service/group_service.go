package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/api"
	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	store   storage.Store
	settler calculator.Settler
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, settler calculator.Settler) *GroupService {
	return &GroupService{store: store, settler: settler}
}

// loadGroupFor fetches a group and checks that username belongs to it.
func loadGroupFor(ctx context.Context, store storage.GroupStore, groupID, username string) (*models.Group, error) {
	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !group.HasMember(username) {
		slog.Warn("Access denied to group", "group_id", groupID, "username", username)
		return nil, toConnectError(fmt.Errorf("%s: %w", username, errNotMember))
	}
	return group, nil
}

// describe converts groups to their API form with display names resolved.
func (s *GroupService) describe(ctx context.Context, groups ...*models.Group) ([]*api.Group, error) {
	var names []string
	for _, g := range groups {
		names = append(names, g.Members...)
	}
	users, err := s.store.GetUsersByUsernames(ctx, normalizeNames(names))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = groupToAPI(g, users)
	}
	return out, nil
}

func (s *GroupService) groupResponse(ctx context.Context, groupID string) (*connect.Response[api.GroupResponse], error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	described, err := s.describe(ctx, group)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GroupResponse{Group: described[0]}), nil
}

// CreateGroup creates a new group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}

	group := &models.Group{
		Name:      name,
		Emoji:     strings.TrimSpace(req.Msg.Emoji),
		CreatedBy: username,
		Members:   normalizeNames(req.Msg.Members),
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return s.groupResponse(ctx, group.ID)
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}
	described, err := s.describe(ctx, group)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&api.GroupResponse{Group: described[0]}), nil
}

// ListGroups retrieves the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroupsForMember(ctx, username)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}
	described, err := s.describe(ctx, groups...)
	if err != nil {
		return nil, err
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: described}), nil
}

// UpdateGroup renames a group or changes its emoji.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateGroup request received",
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
	)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}
	group.Name = name
	group.Emoji = strings.TrimSpace(req.Msg.Emoji)

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("UpdateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group updated", "group_id", group.ID)
	return s.groupResponse(ctx, group.ID)
}

// AddMembers adds usernames to a group. Names already in the group are ignored.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.GroupResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMembers request received", "group_id", req.Msg.GroupID, "members_count", len(req.Msg.Members))

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}
	members := normalizeNames(req.Msg.Members)
	if len(members) == 0 {
		return nil, invalidArgument("at least one member required")
	}

	if newMembers := findNewMembers(members, group.Members); len(newMembers) > 0 {
		if err := s.store.AddGroupMembers(ctx, group.ID, newMembers); err != nil {
			slog.Error("AddMembers failed", "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
		slog.Info("Members added", "group_id", group.ID, "new_members", newMembers)
	}

	return s.groupResponse(ctx, group.ID)
}

// RemoveMember removes a member whose balance in the group is settled.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "member", req.Msg.Member)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}
	member := normalizeNames([]string{req.Msg.Member})
	if len(member) == 0 {
		return nil, invalidArgument("member required")
	}
	if !group.HasMember(member[0]) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("%s is not in the group", member[0]))
	}
	if member[0] == group.CreatedBy {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("the group creator cannot be removed"))
	}

	// Runs inside the removal transaction.
	canLeave := func(expenses []*models.Expense) error {
		balance, err := calculator.MyBalance(member[0], models.ExpensesForBalance(expenses))
		if err != nil {
			slog.Error("RemoveMember failed - stored expenses invalid", "group_id", group.ID, "error", err)
			return connect.NewError(connect.CodeInternal, err)
		}
		if !s.settler.IsSettled(balance) {
			return fmt.Errorf("%s at %.2f: %w", member[0], balance, errMemberHasBalance)
		}
		return nil
	}

	if err := s.store.RemoveGroupMember(ctx, group.ID, member[0], canLeave); err != nil {
		slog.Error("RemoveMember failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member removed", "group_id", group.ID, "member", member[0])
	return s.groupResponse(ctx, group.ID)
}

// DeleteGroup removes a group and its expenses. Only the creator may do this.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.Empty], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != username {
		return nil, toConnectError(errNotCreator)
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.Empty{}), nil
}
