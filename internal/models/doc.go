// Package models defines the core domain models for groupsplit.
//
// # Models
//
//   - User: a registered account, identified in groups by its Username
//   - Group: a set of members who share expenses
//   - Expense: one shared cost with its payers and participants
//
// Group members, payers and participants are usernames, not user IDs. The
// balance engine works on plain names and the storage layer keeps them as-is,
// so a member can be added to a group before they register.
//
// # Settlements
//
// There is no separate settlement model. Paying off a debt is recorded as an
// Expense with the debtor as the only payer and the creditor as the only
// participant; see Expense.IsSettlement.
package models
