// Package payment models the append-only payment ledger: payments, failed
// attempts and refunds linked to the payment they compensate.
package payment
