package service

import (
	"github.com/mmynk/groupsplit/internal/api"
	"github.com/mmynk/groupsplit/internal/auth"
	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/pkg/money"
)

// normalizeNames lowercases and trims usernames, dropping blanks and repeats.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = auth.NormalizeUsername(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// findNewMembers returns the names not already in existing.
func findNewMembers(names, existing []string) []string {
	have := make(map[string]bool, len(existing))
	for _, m := range existing {
		have[m] = true
	}
	var out []string
	for _, n := range names {
		if !have[n] {
			out = append(out, n)
			have[n] = true
		}
	}
	return out
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

// groupToAPI converts a group. users holds the registered accounts among its
// members; unregistered members show their username as display name.
func groupToAPI(g *models.Group, users map[string]*models.User) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, name := range g.Members {
		m := &api.Member{Username: name, DisplayName: name}
		if u, ok := users[name]; ok {
			m.DisplayName = u.DisplayName
			m.Registered = true
		}
		members[i] = m
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Emoji:     g.Emoji,
		CreatedBy: g.CreatedBy,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Title:        e.Title,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
		IsSettlement: e.IsSettlement(),
	}
}

func balancesToAPI(balances calculator.Balances) []*api.MemberBalance {
	out := make([]*api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = &api.MemberBalance{
			Member: b.Member,
			Net:    b.Net,
			Paid:   b.Paid,
			Owed:   b.Owed,
		}
	}
	return out
}

// transfersToAPI converts transfers, rounding amounts to whole cents.
func transfersToAPI(transfers []calculator.Transfer) []*api.Transfer {
	out := make([]*api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = &api.Transfer{
			From:   t.From,
			To:     t.To,
			Amount: money.RoundCents(t.Amount),
		}
	}
	return out
}
