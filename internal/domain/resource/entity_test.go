//go:build unit

package resource_test

import (
	"strings"
	"testing"
	"time"

	"court-reservation/internal/domain/resource"
	"court-reservation/internal/domain/slot"
	"court-reservation/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource(t *testing.T) {
	now := builder.BaseNow

	t.Run("基本成功ケース", func(t *testing.T) {
		r, err := resource.NewResource("  Court E  ", nil, decimal.RequireFromString("1999.999"), resource.DefaultOperatingHours, now)
		require.NoError(t, err)
		assert.Equal(t, "Court E", r.Name())
		assert.Equal(t, "2000.00", r.HourlyPrice().StringFixed(2))
		assert.True(t, r.IsActive())
	})

	testCases := []struct {
		name  string
		rname string
		price string
		errIs error
	}{
		{name: "空の名前NG", rname: "   ", price: "100", errIs: resource.ErrEmptyResourceName},
		{name: "長すぎる名前NG", rname: strings.Repeat("a", 256), price: "100", errIs: resource.ErrResourceNameTooLong},
		{name: "負の料金NG", rname: "Court", price: "-1", errIs: resource.ErrNegativeHourlyPrice},
		{name: "無料OK", rname: "Court", price: "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resource.NewResource(tc.rname, nil, decimal.RequireFromString(tc.price), resource.DefaultOperatingHours, now)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEnsureBookable(t *testing.T) {
	testCases := []struct {
		name     string
		build    *builder.ResourceBuilder
		start    time.Time
		duration int
		errIs    error
	}{
		{name: "営業時間内OK", build: builder.NewResourceBuilder(), start: builder.At(0, 10), duration: 2},
		{name: "閉店ちょうどに終わるOK", build: builder.NewResourceBuilder(), start: builder.At(0, 20), duration: 2},
		{name: "閉店を越えるNG", build: builder.NewResourceBuilder(), start: builder.At(0, 21), duration: 2, errIs: resource.ErrOutsideOperatingHours},
		{name: "開店前NG", build: builder.NewResourceBuilder(), start: builder.At(0, 7), duration: 2, errIs: resource.ErrOutsideOperatingHours},
		{name: "停止中NG", build: builder.NewResourceBuilder().AsDisabled(), start: builder.At(0, 10), duration: 1, errIs: resource.ErrResourceDisabled},
		{name: "独自の営業時間", build: builder.NewResourceBuilder().WithHours(6, 12), start: builder.At(0, 6), duration: 6},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := tc.build.BuildDomain()
			require.NoError(t, err)
			err = r.EnsureBookable(tc.start, tc.duration)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDisableEnable(t *testing.T) {
	r, err := builder.NewResourceBuilder().BuildDomain()
	require.NoError(t, err)

	later := builder.BaseNow.Add(time.Hour)
	r.Disable(later)
	assert.Equal(t, resource.StatusDisabled, r.Status())
	assert.Equal(t, later, r.UpdatedAt())

	r.Enable(later)
	assert.True(t, r.IsActive())
}

func TestOperatingHours(t *testing.T) {
	t.Run("開店が閉店より後はNG", func(t *testing.T) {
		_, err := resource.NewOperatingHours(slot.MustTimeOfDay(22, 0), slot.MustTimeOfDay(8, 0))
		assert.ErrorIs(t, err, resource.ErrInvalidOperatingHours)
	})

	t.Run("未設定はデフォルト", func(t *testing.T) {
		opens := slot.MustTimeOfDay(9, 0)
		h, err := resource.OperatingHoursOrDefault(&opens, nil)
		require.NoError(t, err)
		assert.Equal(t, opens, h.Opens())
		assert.Equal(t, resource.DefaultOperatingHours.Closes(), h.Closes())
	})

	t.Run("グリッド", func(t *testing.T) {
		h, err := resource.NewOperatingHours(slot.MustTimeOfDay(18, 0), slot.MustTimeOfDay(22, 0))
		require.NoError(t, err)
		grid, err := h.Grid(builder.At(0, 0))
		require.NoError(t, err)
		if diff := cmp.Diff([]slot.Label{"18:00", "19:00", "20:00", "21:00"}, grid); diff != "" {
			t.Errorf("grid mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ParseStatus", func(t *testing.T) {
		_, err := resource.ParseStatus("archived")
		assert.ErrorIs(t, err, resource.ErrInvalidStatus)
	})
}
