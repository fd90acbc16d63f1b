// Package cart holds the customer's pre-commit basket and the line items that
// are frozen into an order when it is committed.
package cart
