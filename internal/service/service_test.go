package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/groupsplit/internal/api"
	"github.com/mmynk/groupsplit/internal/auth"
	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/metrics"
	"github.com/mmynk/groupsplit/internal/storage/sqlite"
)

type testEnv struct {
	url      string
	auth     *api.AuthServiceClient
	groups   *api.GroupServiceClient
	expenses *api.ExpenseServiceClient
}

// setupTestServer serves every service from a fresh SQLite database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	m := metrics.New()
	routes := Routes(Deps{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		JWT:           jwtManager,
		Metrics:       m,
		Settler:       calculator.Settler{},
	})

	server := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Routes:  routes,
		Metrics: m.Handler(),
	}))
	t.Cleanup(server.Close)

	return &testEnv{
		url:      server.URL,
		auth:     api.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:   api.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses: api.NewExpenseServiceClient(http.DefaultClient, server.URL),
	}
}

// register creates an account and returns its bearer token.
func (e *testEnv) register(t *testing.T, username, displayName string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Username:    username,
		DisplayName: displayName,
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	return resp.Msg.Token
}

// createGroup creates a group owned by the token's user.
func (e *testEnv) createGroup(t *testing.T, token, name string, members ...string) *api.Group {
	t.Helper()
	resp, err := e.groups.CreateGroup(context.Background(), withToken(token, &api.CreateGroupRequest{
		Name:    name,
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func (e *testEnv) addExpense(t *testing.T, token, groupID string, amount float64, paidBy, participants []string) *api.Expense {
	t.Helper()
	resp, err := e.expenses.CreateExpense(context.Background(), withToken(token, &api.CreateExpenseRequest{
		GroupID:      groupID,
		Title:        "Expense",
		Amount:       amount,
		PaidBy:       paidBy,
		Participants: participants,
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code = %v, want %v (error: %v)", got, want, err)
	}
}
