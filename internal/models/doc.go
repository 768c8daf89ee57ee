// Package models defines the persisted domain models for tripsplit.
//
// # Models
//
//   - Trip: a named group of members sharing expenses
//   - Member: a trip participant with an optional payment address
//   - Expense: a single payment made by one member on behalf of the trip
//
// Balances and transfers are never stored. They are derived on demand by
// the calculator package from a snapshot of a trip's members and expenses.
//
// # Design Principles
//
//  1. Amounts are stored as integer minor units (see package money)
//  2. Relationships use ID strings instead of pointers
//  3. Models carry no behaviour; validation lives in the service layer
package models
