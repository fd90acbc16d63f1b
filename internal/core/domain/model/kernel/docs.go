// Package kernel holds the value objects shared by every aggregate of the ordering core.
//
// The package includes:
//   - UUID: identifiers for orders, tenants, customers, partners and ledger entries
//   - Money: non-negative minor-unit amounts with decimal-exact percentage math
//   - Location: grid points used to price partner deliveries by distance
//   - TimeWindow: half-open reporting intervals
//
// All values are immutable; operations return new values and never mutate the receiver.
package kernel
