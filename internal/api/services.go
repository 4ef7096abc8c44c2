// Package api defines the RPC surface of groupsplit: message types, procedure
// names, handler constructors and typed clients for the auth, group and
// expense services. Messages travel as JSON over the Connect protocol.
package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	AuthServiceName    = "groupsplit.v1.AuthService"
	GroupServiceName   = "groupsplit.v1.GroupService"
	ExpenseServiceName = "groupsplit.v1.ExpenseService"
)

const (
	AuthServiceRegisterProcedure       = "/groupsplit.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/groupsplit.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/groupsplit.v1.AuthService/GetCurrentUser"
	AuthServiceGetUserProcedure        = "/groupsplit.v1.AuthService/GetUser"
	AuthServiceUpdateProfileProcedure  = "/groupsplit.v1.AuthService/UpdateProfile"

	GroupServiceCreateGroupProcedure  = "/groupsplit.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure     = "/groupsplit.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure   = "/groupsplit.v1.GroupService/ListGroups"
	GroupServiceUpdateGroupProcedure  = "/groupsplit.v1.GroupService/UpdateGroup"
	GroupServiceAddMembersProcedure   = "/groupsplit.v1.GroupService/AddMembers"
	GroupServiceRemoveMemberProcedure = "/groupsplit.v1.GroupService/RemoveMember"
	GroupServiceDeleteGroupProcedure  = "/groupsplit.v1.GroupService/DeleteGroup"

	ExpenseServiceCreateExpenseProcedure = "/groupsplit.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure    = "/groupsplit.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure  = "/groupsplit.v1.ExpenseService/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure = "/groupsplit.v1.ExpenseService/DeleteExpense"
	ExpenseServiceGetBalancesProcedure   = "/groupsplit.v1.ExpenseService/GetBalances"
	ExpenseServiceSettleUpProcedure      = "/groupsplit.v1.ExpenseService/SettleUp"
)

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[UserResponse], error)
	GetUser(context.Context, *connect.Request[GetUserRequest]) (*connect.Response[UserResponse], error)
	UpdateProfile(context.Context, *connect.Request[UpdateProfileRequest]) (*connect.Response[UserResponse], error)
}

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[UpdateGroupRequest]) (*connect.Response[GroupResponse], error)
	AddMembers(context.Context, *connect.Request[AddMembersRequest]) (*connect.Response[GroupResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[Empty], error)
}

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[ExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[ExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[Empty], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
	SettleUp(context.Context, *connect.Request[SettleUpRequest]) (*connect.Response[ExpenseResponse], error)
}

// servicePath returns the URL prefix that routes to a service, e.g.
// "/groupsplit.v1.GroupService/".
func servicePath(name string) string {
	return "/" + name + "/"
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

// NewAuthServiceHandler builds an HTTP handler serving every AuthService
// procedure and returns the path it should be mounted on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	mux.Handle(AuthServiceGetUserProcedure, connect.NewUnaryHandler(AuthServiceGetUserProcedure, svc.GetUser, opts...))
	mux.Handle(AuthServiceUpdateProfileProcedure, connect.NewUnaryHandler(AuthServiceUpdateProfileProcedure, svc.UpdateProfile, opts...))
	return servicePath(AuthServiceName), mux
}

// NewGroupServiceHandler builds an HTTP handler serving every GroupService
// procedure and returns the path it should be mounted on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceUpdateGroupProcedure, connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts...))
	mux.Handle(GroupServiceAddMembersProcedure, connect.NewUnaryHandler(GroupServiceAddMembersProcedure, svc.AddMembers, opts...))
	mux.Handle(GroupServiceRemoveMemberProcedure, connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	return servicePath(GroupServiceName), mux
}

// NewExpenseServiceHandler builds an HTTP handler serving every ExpenseService
// procedure and returns the path it should be mounted on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceGetExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(ExpenseServiceGetBalancesProcedure, connect.NewUnaryHandler(ExpenseServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(ExpenseServiceSettleUpProcedure, connect.NewUnaryHandler(ExpenseServiceSettleUpProcedure, svc.SettleUp, opts...))
	return servicePath(ExpenseServiceName), mux
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}

// AuthServiceClient calls AuthService.
type AuthServiceClient struct {
	register       *connect.Client[RegisterRequest, AuthResponse]
	login          *connect.Client[LoginRequest, AuthResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, UserResponse]
	getUser        *connect.Client[GetUserRequest, UserResponse]
	updateProfile  *connect.Client[UpdateProfileRequest, UserResponse]
}

// NewAuthServiceClient returns a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register:       connect.NewClient[RegisterRequest, AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, UserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
		getUser:        connect.NewClient[GetUserRequest, UserResponse](httpClient, baseURL+AuthServiceGetUserProcedure, opts...),
		updateProfile:  connect.NewClient[UpdateProfileRequest, UserResponse](httpClient, baseURL+AuthServiceUpdateProfileProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[UserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetUser(ctx context.Context, req *connect.Request[GetUserRequest]) (*connect.Response[UserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[UserResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// GroupServiceClient calls GroupService.
type GroupServiceClient struct {
	createGroup  *connect.Client[CreateGroupRequest, GroupResponse]
	getGroup     *connect.Client[GetGroupRequest, GroupResponse]
	listGroups   *connect.Client[ListGroupsRequest, ListGroupsResponse]
	updateGroup  *connect.Client[UpdateGroupRequest, GroupResponse]
	addMembers   *connect.Client[AddMembersRequest, GroupResponse]
	removeMember *connect.Client[RemoveMemberRequest, GroupResponse]
	deleteGroup  *connect.Client[DeleteGroupRequest, Empty]
}

// NewGroupServiceClient returns a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:  connect.NewClient[CreateGroupRequest, GroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:     connect.NewClient[GetGroupRequest, GroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:   connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		updateGroup:  connect.NewClient[UpdateGroupRequest, GroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		addMembers:   connect.NewClient[AddMembersRequest, GroupResponse](httpClient, baseURL+GroupServiceAddMembersProcedure, opts...),
		removeMember: connect.NewClient[RemoveMemberRequest, GroupResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		deleteGroup:  connect.NewClient[DeleteGroupRequest, Empty](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMembers(ctx context.Context, req *connect.Request[AddMembersRequest]) (*connect.Response[GroupResponse], error) {
	return c.addMembers.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[GroupResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[Empty], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// ExpenseServiceClient calls ExpenseService.
type ExpenseServiceClient struct {
	createExpense *connect.Client[CreateExpenseRequest, ExpenseResponse]
	getExpense    *connect.Client[GetExpenseRequest, ExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, Empty]
	getBalances   *connect.Client[GetBalancesRequest, GetBalancesResponse]
	settleUp      *connect.Client[SettleUpRequest, ExpenseResponse]
}

// NewExpenseServiceClient returns a client for the ExpenseService at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		createExpense: connect.NewClient[CreateExpenseRequest, ExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:    connect.NewClient[GetExpenseRequest, ExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, Empty](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		getBalances:   connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+ExpenseServiceGetBalancesProcedure, opts...),
		settleUp:      connect.NewClient[SettleUpRequest, ExpenseResponse](httpClient, baseURL+ExpenseServiceSettleUpProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[Empty], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) SettleUp(ctx context.Context, req *connect.Request[SettleUpRequest]) (*connect.Response[ExpenseResponse], error) {
	return c.settleUp.CallUnary(ctx, req)
}
