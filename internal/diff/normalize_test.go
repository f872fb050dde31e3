package diff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telfield/telfield/internal/diff"
	"github.com/telfield/telfield/internal/domain"
)

func TestEqual_NumberRounding(t *testing.T) {
	// Coordinate precision is 6 decimal places.
	assert.True(t, diff.Equal(diff.KindNumber, 52.2708891234, 52.270889))
	assert.False(t, diff.Equal(diff.KindNumber, 52.270890, 52.270889))
}

func TestEqual_NumericStrings(t *testing.T) {
	assert.True(t, diff.Equal(diff.KindNumber, "52.2708891234", 52.270889))
	assert.True(t, diff.Equal(diff.KindNumber, "104.30", "104.3"))

	// Values that fail to parse fall back to generic comparison.
	assert.False(t, diff.Equal(diff.KindNumber, "not-a-number", 52.270889))
	assert.True(t, diff.Equal(diff.KindNumber, "not-a-number", "not-a-number"))
}

func TestEqual_Dates(t *testing.T) {
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	sameInstant := base.In(time.FixedZone("UTC+3", 3*3600))

	assert.True(t, diff.Equal(diff.KindDate, base, sameInstant))
	assert.False(t, diff.Equal(diff.KindDate, base, base.Add(time.Millisecond)))
}

func TestEqual_NilEquivalence(t *testing.T) {
	assert.True(t, diff.Equal(diff.KindText, nil, nil))
	assert.False(t, diff.Equal(diff.KindText, nil, "x"))
	assert.False(t, diff.Equal(diff.KindNumber, 1.0, nil))
}

func TestEqual_PointsNormalization(t *testing.T) {
	// Address omitted normalizes to "" and compares equal.
	a := []domain.LocationPoint{{Name: "A", Coordinates: "1 2"}}
	b := []domain.LocationPoint{{Name: "A", Coordinates: "1 2", Address: ""}}
	assert.True(t, diff.Equal(diff.KindPoints, a, b))

	c := []domain.LocationPoint{{Name: "A", Coordinates: "1 2", Address: "somewhere"}}
	assert.False(t, diff.Equal(diff.KindPoints, a, c))

	// Order matters.
	two := []domain.LocationPoint{{Name: "A"}, {Name: "B"}}
	reversed := []domain.LocationPoint{{Name: "B"}, {Name: "A"}}
	assert.False(t, diff.Equal(diff.KindPoints, two, reversed))
}

func TestNormalizePoints_LooseInput(t *testing.T) {
	pts := diff.NormalizePoints([]any{
		map[string]any{"name": "A", "coordinates": "1 2"},
		map[string]any{"address": "somewhere"},
	})
	require.Len(t, pts, 2)
	assert.Equal(t, domain.LocationPoint{Name: "A", Coordinates: "1 2", Address: ""}, pts[0])
	assert.Equal(t, domain.LocationPoint{Name: "", Coordinates: "", Address: "somewhere"}, pts[1])

	// Non-arrays normalize to an empty sequence.
	assert.Empty(t, diff.NormalizePoints("not a list"))
	assert.Empty(t, diff.NormalizePoints(nil))
}

func TestParseCoordinates(t *testing.T) {
	lat, lon, ok := diff.ParseCoordinates("52.2708891234 104.30")
	require.True(t, ok)
	assert.Equal(t, 52.270889, lat)
	assert.Equal(t, 104.30, lon)

	// Extra tokens are ignored.
	lat, lon, ok = diff.ParseCoordinates("52.27 104.30 extra")
	require.True(t, ok)
	assert.Equal(t, 52.27, lat)
	assert.Equal(t, 104.30, lon)

	// Malformed input yields no coordinates, never an error.
	_, _, ok = diff.ParseCoordinates("not-a-number 12")
	assert.False(t, ok)
	_, _, ok = diff.ParseCoordinates("52.27")
	assert.False(t, ok)
	_, _, ok = diff.ParseCoordinates("")
	assert.False(t, ok)
}
