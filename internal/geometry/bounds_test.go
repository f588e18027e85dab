package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBounds(t *testing.T) {
	bound, err := ParseBounds("2.25,48.81,2.42,48.90")
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2.25, 48.81}, bound.Min)
	assert.Equal(t, orb.Point{2.42, 48.90}, bound.Max)
}

func TestParseBoundsToleratesSpaces(t *testing.T) {
	bound, err := ParseBounds(" 2.25, 48.81, 2.42, 48.90 ")
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2.25, 48.81}, bound.Min)
}

func TestParseBoundsRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"2.25,48.81,2.42",
		"2.25,48.81,2.42,48.90,1",
		"a,b,c,d",
		"2.42,48.81,2.25,48.90",
		"2.25,48.90,2.42,48.81",
	}
	for _, input := range cases {
		_, err := ParseBounds(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatBoundsRoundTrips(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{2.25, 48.81}, Max: orb.Point{2.42, 48.90}}
	parsed, err := ParseBounds(FormatBounds(bound))
	require.NoError(t, err)
	assert.Equal(t, bound, parsed)
}
