package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// State is the lifecycle position of an order.
//
// Delivery orders:
//
//	PLACED ─> ACCEPTED ─> PREPARING ─> READY ─> PICKED_UP ─> ON_THE_WAY ─> DELIVERED
//
// Dine-in orders:
//
//	PLACED ─> PREPARING ─> READY ─> SERVED
//
// Every non-terminal state may also move to CANCELLED. DELIVERED, SERVED and
// CANCELLED are absorbing. CART only exists before commit and is never stored.
type State int

const (
	// StateUnknown (0) catches zero-value states.
	StateUnknown State = iota
	InCart
	Placed
	Accepted
	Preparing
	Ready
	PickedUp
	OnTheWay
	Delivered
	Served
	Cancelled
)

var stateNames = map[State]string{
	InCart:    "CART",
	Placed:    "PLACED",
	Accepted:  "ACCEPTED",
	Preparing: "PREPARING",
	Ready:     "READY",
	PickedUp:  "PICKED_UP",
	OnTheWay:  "ON_THE_WAY",
	Delivered: "DELIVERED",
	Served:    "SERVED",
	Cancelled: "CANCELLED",
}

// ParseState maps a wire name such as "ON_THE_WAY" to a State.
func ParseState(s string) (State, error) {
	for state, name := range stateNames {
		if name == s {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a known state", s))
}

// Validate accepts every state an order record can be persisted in.
func (s State) Validate() error {
	if _, ok := stateNames[s]; !ok || s == InCart {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a persistable state", s))
	}
	return nil
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition may leave the state.
func (s State) IsTerminal() bool {
	return s == Delivered || s == Served || s == Cancelled
}

// Mode tells which lifecycle an order follows.
type Mode int

const (
	// ModeUnknown (0) catches zero-value modes.
	ModeUnknown Mode = iota
	DineIn
	Delivery
)

var modeNames = map[Mode]string{
	DineIn:   "DINE_IN",
	Delivery: "DELIVERY",
}

func ParseMode(s string) (Mode, error) {
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%q is not a known mode", s))
}

func (m Mode) Validate() error {
	if _, ok := modeNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%d is not a known mode", m))
	}
	return nil
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// lifecycles lists the forward path of each mode, in order.
var lifecycles = map[Mode][]State{
	Delivery: {Placed, Accepted, Preparing, Ready, PickedUp, OnTheWay, Delivered},
	DineIn:   {Placed, Preparing, Ready, Served},
}

// Lifecycle returns the forward path for the mode, PLACED first.
func Lifecycle(mode Mode) []State {
	return append([]State(nil), lifecycles[mode]...)
}

// BelongsTo reports whether an order of the given mode can ever be in the state.
func (s State) BelongsTo(mode Mode) bool {
	if s == Cancelled {
		return mode.Validate() == nil
	}
	for _, st := range lifecycles[mode] {
		if st == s {
			return true
		}
	}
	return false
}

// Next returns the states reachable from `from` in one step, forward successor
// first and CANCELLED last. Terminal states return nothing.
func Next(mode Mode, from State) []State {
	if from.IsTerminal() || !from.BelongsTo(mode) {
		return nil
	}
	path := lifecycles[mode]
	next := make([]State, 0, 2)
	for i, st := range path {
		if st == from && i+1 < len(path) {
			next = append(next, path[i+1])
			break
		}
	}
	return append(next, Cancelled)
}

// HasEdge reports whether from → to is a single step of the graph for the mode.
func HasEdge(mode Mode, from State, to State) bool {
	for _, st := range Next(mode, from) {
		if st == to {
			return true
		}
	}
	return false
}
