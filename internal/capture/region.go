package capture

import (
	"fmt"

	serrors "github.com/vnetman/screencast/internal/errors"
)

// Point is a screen coordinate in pixels
type Point struct {
	X int
	Y int
}

// Region is the rectangular capture area, described by its corners
type Region struct {
	TopLeft     Point
	BottomRight Point
}

// Width returns the pixel width of the region, corners inclusive
func (r Region) Width() int {
	return r.BottomRight.X - r.TopLeft.X + 1
}

// Height returns the pixel height of the region, corners inclusive
func (r Region) Height() int {
	return r.BottomRight.Y - r.TopLeft.Y + 1
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d) (%d,%d)", r.TopLeft.X, r.TopLeft.Y, r.BottomRight.X, r.BottomRight.Y)
}

// Validate rejects regions whose bottom-right corner is not strictly below
// and to the right of the top-left corner
func (r Region) Validate() error {
	if r.BottomRight.X <= r.TopLeft.X || r.BottomRight.Y <= r.TopLeft.Y {
		return serrors.InvalidInputf("capture area %s is invalid", r)
	}
	return nil
}
