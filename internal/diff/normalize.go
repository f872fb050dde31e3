// Package diff computes field-level change-sets between a stored task and a
// sparse patch, with type-aware value equality.
package diff

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/telfield/telfield/internal/domain"
)

// FieldKind selects the comparison strategy for a field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindDate
	KindPoints
)

// fieldKinds maps every mutable field to its comparison strategy.
var fieldKinds = map[domain.Field]FieldKind{
	domain.FieldName:           KindText,
	domain.FieldStationNumber:  KindText,
	domain.FieldStationAddress: KindText,
	domain.FieldDescription:    KindText,
	domain.FieldStatus:         KindText,
	domain.FieldPriority:       KindText,
	domain.FieldDueDate:        KindDate,
	domain.FieldPoints:         KindPoints,
	domain.FieldLatitude:       KindNumber,
	domain.FieldLongitude:      KindNumber,
	domain.FieldTotalCost:      KindNumber,
	domain.FieldExecutorID:     KindText,
	domain.FieldExecutorName:   KindText,
	domain.FieldExecutorEmail:  KindText,
}

// KindOf returns the comparison strategy for a field.
func KindOf(f domain.Field) FieldKind {
	return fieldKinds[f]
}

// Equal reports whether two field values are materially equal under the
// given kind. All "empty" representations (nil on either side) compare equal
// to each other.
func Equal(kind FieldKind, a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch kind {
	case KindNumber:
		fa, okA := toNumber(a)
		fb, okB := toNumber(b)
		if okA && okB {
			return Round6(fa) == Round6(fb)
		}
	case KindDate:
		ta, okA := a.(time.Time)
		tb, okB := b.(time.Time)
		if okA && okB {
			return ta.UnixMilli() == tb.UnixMilli()
		}
	case KindPoints:
		return pointsEqual(NormalizePoints(a), NormalizePoints(b))
	case KindText:
		sa, okA := a.(string)
		sb, okB := b.(string)
		if okA && okB {
			return sa == sb
		}
	}

	return reflect.DeepEqual(a, b)
}

// Round6 rounds a coordinate-precision value to 6 decimal places.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// toNumber coerces numeric values and numeric-looking strings to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// NormalizePoints coerces a location-list value to a canonical ordered slice
// with "" defaults for missing parts. Non-list values normalize to an empty
// slice.
func NormalizePoints(v any) []domain.LocationPoint {
	switch pts := v.(type) {
	case []domain.LocationPoint:
		out := make([]domain.LocationPoint, len(pts))
		copy(out, pts)
		return out
	case []any:
		out := make([]domain.LocationPoint, 0, len(pts))
		for _, el := range pts {
			m, ok := el.(map[string]any)
			if !ok {
				out = append(out, domain.LocationPoint{})
				continue
			}
			out = append(out, domain.LocationPoint{
				Name:        stringField(m, "name"),
				Coordinates: stringField(m, "coordinates"),
				Address:     stringField(m, "address"),
			})
		}
		return out
	}
	return []domain.LocationPoint{}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func pointsEqual(a, b []domain.LocationPoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ParseCoordinates extracts a lat/lon pair from a combined "lat lon" string.
// It requires at least two numeric tokens (extra tokens are ignored) and
// rounds each to 6 decimals. Malformed input yields ok=false, never an error.
func ParseCoordinates(s string) (lat, lon float64, ok bool) {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return 0, 0, false
	}
	latVal, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lonVal, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return Round6(latVal), Round6(lonVal), true
}
