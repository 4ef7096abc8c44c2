package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/api"
	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/metrics"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
	"github.com/mmynk/groupsplit/pkg/money"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store   storage.Store
	metrics *metrics.Metrics
	settler calculator.Settler
}

// NewExpenseService creates a new ExpenseService. m may be nil.
func NewExpenseService(store storage.Store, m *metrics.Metrics, settler calculator.Settler) *ExpenseService {
	return &ExpenseService{store: store, metrics: m, settler: settler}
}

// autoAddMembers adds any payers or participants not already in the group.
func (s *ExpenseService) autoAddMembers(ctx context.Context, group *models.Group, expense *models.Expense) {
	people := make([]string, 0, len(expense.PaidBy)+len(expense.Participants))
	people = append(people, expense.PaidBy...)
	people = append(people, expense.Participants...)

	newMembers := findNewMembers(people, group.Members)
	if len(newMembers) == 0 {
		return
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, newMembers); err != nil {
		slog.Error("autoAddMembers: failed to add members", "group_id", group.ID, "error", err)
		return
	}
	slog.Info("Auto-added members to group", "group_id", group.ID, "new_members", newMembers)
}

// CreateExpense records a shared cost. The expense is checked with the same
// rules the balance computation applies, so a stored expense never breaks it.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"title", req.Msg.Title,
		"amount", req.Msg.Amount,
	)

	title := strings.TrimSpace(req.Msg.Title)
	if title == "" {
		return nil, invalidArgument("title required")
	}

	expense := &models.Expense{
		GroupID:      req.Msg.GroupID,
		Title:        title,
		Amount:       req.Msg.Amount,
		PaidBy:       normalizeNames(req.Msg.PaidBy),
		Participants: normalizeNames(req.Msg.Participants),
		CreatedBy:    username,
	}
	if err := expense.ForBalance().Validate(); err != nil {
		slog.Warn("CreateExpense rejected", "error", err)
		return nil, toConnectError(err)
	}

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, toConnectError(err)
	}
	s.autoAddMembers(ctx, group, expense)

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", group.ID)
	return connect.NewResponse(&api.ExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses returns a group's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToAPI(e)
	}

	slog.Info("ListExpenses successful", "group_id", group.ID, "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// GetExpense returns one expense with its payers and participants. Only
// members of the expense's group may read it.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseID)

	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := loadGroupFor(ctx, s.store, expense.GroupID, username); err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.ExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// DeleteExpense removes an expense from its group.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.Empty], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := loadGroupFor(ctx, s.store, expense.GroupID, username); err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID)
	return connect.NewResponse(&api.Empty{}), nil
}

// settle computes a group's balances and the transfers that clear them.
func (s *ExpenseService) settle(ctx context.Context, group *models.Group) (calculator.Balances, []calculator.Transfer, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, toConnectError(err)
	}

	balances, err := calculator.ComputeBalances(group.Members, models.ExpensesForBalance(expenses))
	if err != nil {
		s.metrics.ObserveComputation("invalid_expense")
		slog.Error("Balance computation failed", "group_id", group.ID, "error", err)
		return nil, nil, connect.NewError(connect.CodeInternal, err)
	}

	transfers, err := s.settler.Simplify(balances)
	if err != nil {
		s.metrics.ObserveComputation("invalid_balances")
		slog.Error("Settlement failed", "group_id", group.ID, "error", err)
		return nil, nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.ObserveComputation("ok")
	s.metrics.ObserveTransfers(len(transfers))
	return balances, transfers, nil
}

// GetBalances returns every member's net balance, the simplified transfers
// that settle the group, and the caller's own balance.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetBalances request received", "group_id", req.Msg.GroupID)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}

	balances, transfers, err := s.settle(ctx, group)
	if err != nil {
		return nil, err
	}

	slog.Info("GetBalances successful",
		"group_id", group.ID,
		"members", len(balances),
		"transfers", len(transfers),
	)

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances:  balancesToAPI(balances),
		Transfers: transfersToAPI(transfers),
		MyBalance: balances.Get(username),
	}), nil
}

// SettleUp records a payment from one member to another as a settlement
// expense. The payer is the only payer and the receiver the only participant,
// so the debt between them shrinks by the amount.
func (s *ExpenseService) SettleUp(ctx context.Context, req *connect.Request[api.SettleUpRequest]) (*connect.Response[api.ExpenseResponse], error) {
	username, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SettleUp request received",
		"group_id", req.Msg.GroupID,
		"from", req.Msg.From,
		"to", req.Msg.To,
		"amount", req.Msg.Amount,
	)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, username)
	if err != nil {
		return nil, err
	}

	from := normalizeNames([]string{req.Msg.From})
	to := normalizeNames([]string{req.Msg.To})
	if len(from) == 0 || len(to) == 0 {
		return nil, invalidArgument("from and to required")
	}
	if from[0] == to[0] {
		return nil, invalidArgument("cannot settle with yourself")
	}
	for _, name := range []string{from[0], to[0]} {
		if !group.HasMember(name) {
			return nil, invalidArgument("%s is not in the group", name)
		}
	}

	amount := req.Msg.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || money.RoundCents(amount) <= 0 {
		return nil, invalidArgument("amount must be at least one cent")
	}

	transfer := calculator.Transfer{From: from[0], To: to[0], Amount: money.RoundCents(amount)}
	recorded := transfer.AsExpense("")
	if err := recorded.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	expense := &models.Expense{
		GroupID:      group.ID,
		Title:        transfer.Title(),
		Amount:       recorded.Amount,
		PaidBy:       recorded.PaidBy,
		Participants: recorded.Participants,
		CreatedBy:    username,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("SettleUp failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.IncSettlements()

	slog.Info("Settlement recorded",
		"expense_id", expense.ID,
		"from", transfer.From,
		"to", transfer.To,
		"amount", fmt.Sprintf("%.2f", transfer.Amount),
	)
	return connect.NewResponse(&api.ExpenseResponse{Expense: expenseToAPI(expense)}), nil
}
