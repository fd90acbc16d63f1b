// Package order implements the order aggregate: the lifecycle graph for
// dine-in and delivery, the frozen price breakdown, the payment status and the
// partner assignment, together with the transition errors shared by every
// write path.
//
// Lifecycle states, modes and payment statuses are int enums with wire names
// ("PLACED", "DINE_IN", "PAID") used by persistence and HTTP.
package order
