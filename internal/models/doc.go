// Package models defines the core domain model for tally.
//
// # Models
//
//   - Project: aggregate root owning members, transactions and categories
//   - Member: a participant in a project
//   - Transaction: one recorded expense, paid by one member and shared
//     among a set of participants
//
// # Design Principles
//
//  1. **ID references everywhere**: transactions reference their payer and
//     participants by immutable member ID. Display names are resolved at
//     presentation time, so renaming a member never touches transactions.
//  2. **Snapshot friendly**: every model round-trips through JSON. Older
//     snapshots may carry amounts as strings and omit the participant and
//     confirmation sets; decoding normalizes both.
//  3. **Dumb data, pure computation**: models hold state and small
//     mutators. All statistics and settlement logic lives in the ledger
//     package, which recomputes from the transaction list on every query.
package models
