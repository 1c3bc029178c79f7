// Package models defines the core domain types for minibank.
//
// # Types
//
//   - Entry: one immutable, signed balance change with a label
//   - Account: an owner, a balance and the ordered ledger of entries
//   - AccountRecord: a directory row binding a username and credential hash to an account
//   - Error: a domain error with a Kind (invalid argument or no session)
//
// # Invariants
//
// An Account's balance always equals its opening balance plus the sum of its
// entries. Deposit and Withdraw either apply fully or leave the account untouched.
//
// Ownership flows one way: the directory owns records, a record owns its
// account, an account owns its entries. Nothing refers back up.
package models
