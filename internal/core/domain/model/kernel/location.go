package kernel

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Coordinate is one axis of the city grid used to price deliveries.
type Coordinate int32

const (
	LocationMinX Coordinate = 0
	LocationMinY Coordinate = 0
	LocationMaxX Coordinate = 10000
	LocationMaxY Coordinate = 10000
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation")

// Location is a pickup or drop-off point on the city grid. Partner fees are
// tiered on the distance between two locations, so only grid positions are kept;
// geocoding happens in the client apps.
//
// Example:
//
//	pickup, _ := kernel.NewLocation(120, 40)
//	dropoff, _ := kernel.NewLocation(125, 43)
//	pickup.Distance(dropoff) // 8
type Location struct { //nolint:recvcheck //using for validation
	x     Coordinate
	y     Coordinate
	guard guard.ConstructorGuard
}

// NewLocation validates both coordinates against the grid bounds.
//
// Parameters:
//   - x: column, in [LocationMinX..LocationMaxX]
//   - y: row, in [LocationMinY..LocationMaxY]
//
// Returns:
//   - Location: a constructed location
//   - error: joined out-of-range errors for every offending axis
func NewLocation(x Coordinate, y Coordinate) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate reports ErrLocationIsNotConstructed for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) X() Coordinate {
	return l.x
}

func (l Location) Y() Coordinate {
	return l.y
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%d,%d)", l.x, l.y)
}

// IsEqual compares coordinates; two invalid locations are never equal.
func (l Location) IsEqual(other Location) bool {
	if l.Validate() != nil || other.Validate() != nil {
		return false
	}
	return l.x == other.x && l.y == other.y
}

// Distance returns the Manhattan distance in grid blocks.
//
// Returns:
//   - int: |x1-x2| + |y1-y2|
//   - error: ErrLocationIsNotConstructed if either side is a zero value
func (l Location) Distance(target Location) (int, error) {
	if err := errors.Join(l.Validate(), target.Validate()); err != nil {
		return 0, err
	}
	return abs(int(l.x)-int(target.x)) + abs(int(l.y)-int(target.y)), nil
}

func (l *Location) setX(x Coordinate) error {
	if x < LocationMinX || x > LocationMaxX {
		return errs.NewValueIsOutOfRangeError("x", x, LocationMinX, LocationMaxX)
	}
	l.x = x
	return nil
}

func (l *Location) setY(y Coordinate) error {
	if y < LocationMinY || y > LocationMaxY {
		return errs.NewValueIsOutOfRangeError("y", y, LocationMinY, LocationMaxY)
	}
	l.y = y
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
