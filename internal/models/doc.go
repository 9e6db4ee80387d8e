// Package models defines the core domain models for settleup.
//
// # Models
//
//   - Group: a named set of members sharing expenses, optionally archived
//   - Member: a participant who pays for and/or benefits from expenses
//   - Expense: an outlay by one member split equally among beneficiaries
//
// Balances and debts are never stored. They are derived from a group's
// members and expenses on every read (see package calculator).
//
// # Design Principles
//
//  1. **Group owns everything**: members and expenses live and die with their group
//  2. **IDs, not pointers**: expenses reference members by ID so a removed member
//     simply stops resolving instead of leaving a dangling pointer
//  3. **Settlements are expenses**: a repayment is an expense of kind
//     ExpenseKindSettlement, so undoing it is just removing it
package models
