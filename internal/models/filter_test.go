package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilFilterQueriesWideOpen(t *testing.T) {
	var f *FilterState
	values := f.QueryValues()

	assert.Equal(t, "0,1,2,3,4,5", values.Get("propertyType"))
	assert.Equal(t, "1,2,3,4,5", values.Get("roomCount"))
	assert.Equal(t, "0", values.Get("minSellPrice"))
	assert.Equal(t, "100000000", values.Get("maxSellPrice"))
	assert.Equal(t, "2014-01-01", values.Get("minDate"))
}

func TestQueryValuesReflectsSelection(t *testing.T) {
	f := DefaultFilterState()
	f.PropertyTypes = []string{"2"}
	f.RoomCounts = []string{"3", "4"}
	f.MinSellPrice = 150000
	f.MaxSquareMeterPrice = 12500.5
	f.MinDateMonths = 12
	f.MaxDateMonths = 60

	values := f.QueryValues()
	assert.Equal(t, "2", values.Get("propertyType"))
	assert.Equal(t, "3,4", values.Get("roomCount"))
	assert.Equal(t, "150000", values.Get("minSellPrice"))
	assert.Equal(t, "12500.5", values.Get("maxSquareMeterPrice"))
	assert.Equal(t, "2015-01-01", values.Get("minDate"))
	assert.Equal(t, "2019-01-01", values.Get("maxDate"))
}

func TestMonthsToDate(t *testing.T) {
	assert.Equal(t, "2014-01-01", MonthsToDate(0))
	assert.Equal(t, "2014-02-01", MonthsToDate(1))
	assert.Equal(t, "2024-01-01", MonthsToDate(120))
}

func TestDeviceClassFor(t *testing.T) {
	assert.Equal(t, DeviceDesktop, DeviceClassFor(1440, false))
	assert.Equal(t, DeviceTouch, DeviceClassFor(390, true))
	assert.Equal(t, DeviceTouch, DeviceClassFor(1024, true))
	assert.Equal(t, DeviceTouch, DeviceClassFor(500, false))
}
