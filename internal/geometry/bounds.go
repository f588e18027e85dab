package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParseBounds parses a "west,south,east,north" query parameter into an
// orb.Bound.
func ParseBounds(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("invalid bounds %q: expected west,south,east,north", s)
	}

	coords := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		coords[i] = v
	}

	bound := orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	}
	if bound.Min[0] > bound.Max[0] || bound.Min[1] > bound.Max[1] {
		return orb.Bound{}, fmt.Errorf("invalid bounds %q: min exceeds max", s)
	}
	return bound, nil
}

// FormatBounds renders a bound as a "west,south,east,north" parameter.
func FormatBounds(b orb.Bound) string {
	return fmt.Sprintf("%g,%g,%g,%g", b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}
