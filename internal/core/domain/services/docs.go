// Package services provides the domain services of the ordering core: logic
// that spans the order, its actors, its payments and its partner.
//
// The package includes:
//   - RoleGateway: ownership and the edge role table, plus AllowedNext
//   - OrderStateMachine: validates and applies lifecycle transitions
//   - PaymentLedger: payment status changes and linked ledger entries
//   - EarningsCalculator: partner earnings and time-bucketed breakdowns
//   - PartnerAssigner: partner assignment with fee capture
//
// All services are stateless values and never mutate their inputs.
package services
