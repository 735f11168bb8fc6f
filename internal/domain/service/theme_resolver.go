// Package service holds pure domain logic for theme resolution.
package service

import (
	"fmt"
	"math"

	"github.com/bnema/themesync/internal/domain/entity"
)

// ResolveScheme reconciles the declared preference with the ambient signal.
//
// A valid forced scheme wins unconditionally. A light or dark preference is
// applied as declared. The system preference follows ambient, or the light
// fallback when ambient is unknown.
func ResolveScheme(declared entity.Preference, ambient, forced entity.Scheme) entity.Scheme {
	if forced.Valid() {
		return forced
	}
	if scheme, ok := declared.Scheme(); ok {
		return scheme
	}
	if ambient.Valid() {
		return ambient
	}
	return entity.SchemeFallback
}

// RevealRadius returns the distance from origin to the farthest viewport corner,
// which is the radius a circle needs to cover the whole viewport.
func RevealRadius(origin entity.Point, vp entity.Viewport) float64 {
	dx := math.Max(origin.X, vp.Width-origin.X)
	dy := math.Max(origin.Y, vp.Height-origin.Y)
	return math.Hypot(dx, dy)
}

// RevealKeyframes returns the start and end clip-path values of a circular reveal.
func RevealKeyframes(origin entity.Point, radius float64) [2]string {
	return [2]string{
		fmt.Sprintf("circle(0px at %gpx %gpx)", origin.X, origin.Y),
		fmt.Sprintf("circle(%gpx at %gpx %gpx)", radius, origin.X, origin.Y),
	}
}
