package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory(t *testing.T) {
	all := AllCategories()
	assert.True(t, all.IsAll())
	assert.True(t, all.Matches(TextValue("anything")))
	assert.True(t, all.Matches(NumberValue(4)))
	assert.Equal(t, "All Sites", all.Label("All Sites"))

	site := CategoryOf("KSC LC-39A")
	assert.False(t, site.IsAll())
	assert.True(t, site.Matches(TextValue("KSC LC-39A")))
	assert.False(t, site.Matches(TextValue("ksc lc-39a")))
	assert.Equal(t, "KSC LC-39A", site.Label("All Sites"))

	var zero Category
	assert.True(t, zero.IsAll())
}

func TestParseCategory(t *testing.T) {
	assert.True(t, ParseCategory("", "ALL").IsAll())
	assert.True(t, ParseCategory("ALL", "ALL").IsAll())

	// A real category spelled like the token only collides at the edge that chose the token
	named := ParseCategory("ALL", "*")
	assert.False(t, named.IsAll())
	assert.Equal(t, "ALL", named.Value())
}

func TestNumericRange(t *testing.T) {
	rng := NumericRange{Min: 0, Max: 10}
	require.NoError(t, rng.Validate())
	assert.True(t, rng.Contains(0))
	assert.True(t, rng.Contains(10))
	assert.False(t, rng.Contains(10.0001))

	full := FullRange()
	require.NoError(t, full.Validate())
	assert.True(t, full.Contains(math.MaxFloat64))
	assert.True(t, full.Contains(-math.MaxFloat64))

	point := NumericRange{Min: 5, Max: 5}
	assert.NoError(t, point.Validate())
}

func TestNumericRangeRejectsReversedBounds(t *testing.T) {
	err := NumericRange{Min: 10, Max: 1}.Validate()
	var rangeErr *InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 10.0, rangeErr.Min)
	assert.Equal(t, 1.0, rangeErr.Max)

	assert.Error(t, NumericRange{Min: math.NaN(), Max: 1}.Validate())
	assert.Error(t, Selection{Range: NumericRange{Min: 2, Max: 1}}.Validate())
}

func TestDataLoadErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&DataLoadError{Source: "sales.csv", Reason: "failed to GET CSV", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "sales.csv")
	assert.Equal(t, "load x: missing", (&DataLoadError{Source: "x", Reason: "missing"}).Error())
}

func TestCategoryMatchesNumericLookingLabels(t *testing.T) {
	site := CategoryOf("40")
	assert.True(t, site.Matches(NumberValue(40)))
	assert.True(t, site.Matches(TextValue("40")))
	assert.False(t, site.Matches(NumberValue(41)))

	assert.True(t, CategoryOf("2.5").Matches(NumberValue(2.5)))
}
