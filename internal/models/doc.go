// Package models defines the core domain models for spendwise.
//
// # Models
//
//   - User: Registered account that owns every other record
//   - Expense: A single spending event in one Category
//   - Budget: A spending limit for one Category over a BudgetPeriod
//   - LogEntry: Append-only activity record
//
// # Design Principles
//
//  1. **Integer money**: every amount is a Money value holding cents, so sums
//     compared against budget limits never drift.
//  2. **Explicit ownership**: owned records carry the owner's user ID and are
//     only ever read or changed on behalf of that user.
//  3. **Avoid circular references**: relationships are ID strings, not pointers.
//  4. **Closed enumerations**: Category and BudgetPeriod reject unknown values
//     at the boundary.
package models
