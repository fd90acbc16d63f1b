// Package partner contains the delivery partner aggregate, the fee schedule
// used to price each assignment and bonus events that add to earnings.
//
// Partners do not own orders. An order references its partner through its
// assignment, and earnings are derived from delivered orders afterwards.
package partner
