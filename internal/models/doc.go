// Package models defines the persisted record types for Lunchledger.
//
// Four record streams make up the system:
//   - Member: one person in the lunch group
//   - Order: a shared lunch order with per-person amounts
//   - Settlement: a direct repayment between two members
//   - Adjustment: a manually entered outstanding balance
//
// Every record round-trips through JSON and the store exactly as written.
// Derived values (debt entries, totals) live in the ledger package and are
// never persisted; the records here are the single source of truth and the
// ledger view is rebuilt from them on every request.
//
// Relationships use ID strings rather than pointers so records stay flat
// and serializable.
package models
