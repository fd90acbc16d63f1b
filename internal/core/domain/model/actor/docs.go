// Package actor models who is asking for a change: customers, kitchen staff of a
// restaurant tenant, delivery partners and super-admins.
package actor
