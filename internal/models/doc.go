// Package models defines the core domain models for billsplit.
//
// # Source of truth
//
// A Session is the only mutable entity. It owns:
//   - Participants: the roster of names (no user accounts)
//   - Items: the LineItem ledger, each item assignable to zero or more names
//   - Tax and Discount: replaced wholesale on every edit
//
// # Derived models
//
// PersonTotal, Totals and Summary are pure outputs of the calculator package.
// They are recomputed on every change and never stored.
//
// # Design Principles
//
//  1. Participants are plain name strings, unique within a session
//  2. Relationships use names and IDs, never pointers
//  3. Money is float64; rounding happens only when formatting for display
package models
