package models

import (
	"fmt"
	"strings"
)

// Surface represents the court surface of a match.
type Surface int

const (
	SurfaceCarpet Surface = iota
	SurfaceClay
	SurfaceGrass
	SurfaceHard
)

// NumSurfaces is the number of distinct court surfaces.
const NumSurfaces = 4

// Surfaces lists all surfaces in canonical index order.
var Surfaces = [NumSurfaces]Surface{SurfaceCarpet, SurfaceClay, SurfaceGrass, SurfaceHard}

var surfaceNames = [NumSurfaces]string{"Carpet", "Clay", "Grass", "Hard"}

// String returns the canonical surface name.
func (s Surface) String() string {
	if s < 0 || int(s) >= NumSurfaces {
		return fmt.Sprintf("Surface(%d)", int(s))
	}
	return surfaceNames[s]
}

// ParseSurface parses a surface name case-insensitively.
func ParseSurface(name string) (Surface, error) {
	for i, n := range surfaceNames {
		if strings.EqualFold(name, n) {
			return Surface(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
}
