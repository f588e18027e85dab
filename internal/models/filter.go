package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// dateAnchor is the start of the public DVF window; filter date ranges
// are expressed as whole months since this anchor.
var dateAnchor = time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

// Wide-open defaults used when the user never touched a filter. The
// map must never be empty at first load, so absence of a filter still
// produces a full query.
const (
	DefaultMaxSellPrice   = 100_000_000
	DefaultMaxSurface     = 10_000
	DefaultMaxSurfaceLand = 1_000_000
	DefaultMaxSquareMeter = 1_000_000
	DefaultMaxDateMonths  = 200
	DefaultPropertyTypes  = "0,1,2,3,4,5"
	DefaultRoomCounts     = "1,2,3,4,5"
)

// FilterState is the active filter selection. It is an immutable value
// replaced wholesale by the caller; the engine only converts it to
// query parameters.
type FilterState struct {
	PropertyTypes       []string
	RoomCounts          []string
	MinSellPrice        float64
	MaxSellPrice        float64
	MinSurface          float64
	MaxSurface          float64
	MinSurfaceLand      float64
	MaxSurfaceLand      float64
	MinSquareMeterPrice float64
	MaxSquareMeterPrice float64
	MinDateMonths       int
	MaxDateMonths       int
}

// DefaultFilterState returns the wide-open selection.
func DefaultFilterState() FilterState {
	return FilterState{
		PropertyTypes:       strings.Split(DefaultPropertyTypes, ","),
		RoomCounts:          strings.Split(DefaultRoomCounts, ","),
		MinSellPrice:        0,
		MaxSellPrice:        DefaultMaxSellPrice,
		MinSurface:          0,
		MaxSurface:          DefaultMaxSurface,
		MinSurfaceLand:      0,
		MaxSurfaceLand:      DefaultMaxSurfaceLand,
		MinSquareMeterPrice: 0,
		MaxSquareMeterPrice: DefaultMaxSquareMeter,
		MinDateMonths:       0,
		MaxDateMonths:       DefaultMaxDateMonths,
	}
}

// MonthsToDate converts a months-since-anchor offset to an ISO date.
func MonthsToDate(months int) string {
	return dateAnchor.AddDate(0, months, 0).Format("2006-01-02")
}

// QueryValues flattens the filter into upstream query parameters. A
// nil receiver yields the wide-open defaults.
func (f *FilterState) QueryValues() url.Values {
	state := DefaultFilterState()
	if f != nil {
		state = *f
	}

	values := url.Values{}
	values.Set("propertyType", strings.Join(state.PropertyTypes, ","))
	values.Set("roomCount", strings.Join(state.RoomCounts, ","))
	values.Set("minSellPrice", formatAmount(state.MinSellPrice))
	values.Set("maxSellPrice", formatAmount(state.MaxSellPrice))
	values.Set("minSurface", formatAmount(state.MinSurface))
	values.Set("maxSurface", formatAmount(state.MaxSurface))
	values.Set("minSurfaceLand", formatAmount(state.MinSurfaceLand))
	values.Set("maxSurfaceLand", formatAmount(state.MaxSurfaceLand))
	values.Set("minSquareMeterPrice", formatAmount(state.MinSquareMeterPrice))
	values.Set("maxSquareMeterPrice", formatAmount(state.MaxSquareMeterPrice))
	values.Set("minDate", MonthsToDate(state.MinDateMonths))
	values.Set("maxDate", MonthsToDate(state.MaxDateMonths))
	return values
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
