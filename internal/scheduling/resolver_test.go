package scheduling

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// 2025-06-02 - понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return monday.AddDate(0, 0, offset)
}

func TestResolveDay(t *testing.T) {
	schedule := domain.WeeklySchedule{
		{Weekday: 1, IsOpen: true, Morning: &domain.Shift{Start: "08:00", End: "13:00"}},
		{Weekday: 2, IsOpen: false, Morning: &domain.Shift{Start: "08:00", End: "13:00"}},
		{Weekday: 3, IsOpen: true, Morning: &domain.Shift{Start: "09:00", End: "10:00"}, Afternoon: &domain.Shift{Start: "15:00", End: "16:00"}},
		{Weekday: 4, IsOpen: true, Legacy: &domain.Shift{Start: "11:00", End: "12:00"}},
		{Weekday: 5, IsOpen: true},
		{Weekday: 6, IsOpen: true, Afternoon: &domain.Shift{Start: "12:00", End: "13:00"}, Legacy: &domain.Shift{Start: "08:00", End: "20:00"}},
	}

	tests := []struct {
		name       string
		date       time.Time
		wantStatus DayStatus
		wantSlots  []types.TimeString
	}{
		{
			name:       "monday morning only",
			date:       day(0),
			wantStatus: DayStatusOpen,
			wantSlots:  []types.TimeString{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"},
		},
		{
			name:       "tuesday closed ignores shifts",
			date:       day(1),
			wantStatus: DayStatusClosed,
			wantSlots:  []types.TimeString{},
		},
		{
			name:       "wednesday morning and afternoon",
			date:       day(2),
			wantStatus: DayStatusOpen,
			wantSlots:  []types.TimeString{"09:00", "09:30", "15:00", "15:30"},
		},
		{
			name:       "thursday legacy shift",
			date:       day(3),
			wantStatus: DayStatusOpen,
			wantSlots:  []types.TimeString{"11:00", "11:30"},
		},
		{
			name:       "friday open without hours",
			date:       day(4),
			wantStatus: DayStatusConfigurationIncomplete,
			wantSlots:  []types.TimeString{},
		},
		{
			name:       "saturday split shift wins over legacy",
			date:       day(5),
			wantStatus: DayStatusOpen,
			wantSlots:  []types.TimeString{"12:00", "12:30"},
		},
		{
			name:       "sunday missing from schedule",
			date:       day(6),
			wantStatus: DayStatusClosed,
			wantSlots:  []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ResolveDay(schedule, tt.date)

			assert.Equal(t, tt.wantStatus, plan.Status)
			assert.Equal(t, tt.wantSlots, plan.SlotList())
			assert.False(t, plan.Unconfigured)
		})
	}
}

func TestResolveDay_EmptySchedule(t *testing.T) {
	for _, schedule := range []domain.WeeklySchedule{nil, {}} {
		for offset := 0; offset < 7; offset++ {
			date := day(offset)
			plan := ResolveDay(schedule, date)

			assert.True(t, plan.Unconfigured)

			switch date.Weekday() {
			case time.Saturday, time.Sunday:
				assert.Equal(t, DayStatusClosed, plan.Status, date.Weekday().String())
				assert.Empty(t, plan.SlotList())
			default:
				assert.Equal(t, DayStatusDefaultHours, plan.Status, date.Weekday().String())
				slots := plan.SlotList()
				assert.Len(t, slots, 18)
				assert.Equal(t, types.TimeString("09:00"), slots[0])
				assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])
			}
		}
	}
}

func TestResolveDay_ClosedDayIgnoresAnyShiftData(t *testing.T) {
	schedule := domain.WeeklySchedule{{
		Weekday:   1,
		IsOpen:    false,
		Morning:   &domain.Shift{Start: "08:00", End: "12:00"},
		Afternoon: &domain.Shift{Start: "13:00", End: "18:00"},
		Legacy:    &domain.Shift{Start: "08:00", End: "18:00"},
	}}

	plan := ResolveDay(schedule, monday)

	assert.Equal(t, DayStatusClosed, plan.Status)
	assert.Empty(t, plan.Shifts)
	assert.False(t, plan.IsBookable())
}

func TestResolveDay_Idempotent(t *testing.T) {
	schedule := domain.WeeklySchedule{
		{Weekday: 1, IsOpen: true, Morning: &domain.Shift{Start: "08:00", End: "13:00"}, Afternoon: &domain.Shift{Start: "14:00", End: "18:00"}},
	}

	first := slices.Collect(ResolveDay(schedule, monday).Slots())
	second := slices.Collect(ResolveDay(schedule, monday).Slots())

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestDayPlan_SlotListMatchesSlots(t *testing.T) {
	schedule := domain.WeeklySchedule{
		{Weekday: 1, IsOpen: true, Morning: &domain.Shift{Start: "09:00", End: "10:00"}, Afternoon: &domain.Shift{Start: "14:00", End: "15:00"}},
		{Weekday: 2, IsOpen: true, Legacy: &domain.Shift{Start: "10:00", End: "11:00"}},
		{Weekday: 3, IsOpen: false},
	}

	t.Run("split shifts", func(t *testing.T) {
		plan := ResolveDay(schedule, monday)
		assert.Equal(t, []types.TimeString{"09:00", "09:30", "14:00", "14:30"}, plan.SlotList())
		assert.Equal(t, plan.SlotList(), slices.Collect(plan.Slots()))
	})

	t.Run("legacy shift", func(t *testing.T) {
		plan := ResolveDay(schedule, day(1))
		assert.Equal(t, []types.TimeString{"10:00", "10:30"}, plan.SlotList())
		assert.Equal(t, plan.SlotList(), slices.Collect(plan.Slots()))
	})

	t.Run("closed day gives empty non-nil list", func(t *testing.T) {
		plan := ResolveDay(schedule, day(2))
		assert.NotNil(t, plan.SlotList())
		assert.Empty(t, plan.SlotList())
	})
}

func TestResolveDay_DropsTimeOfDay(t *testing.T) {
	plan := ResolveDay(nil, time.Date(2025, 6, 2, 15, 45, 0, 0, time.UTC))

	assert.Equal(t, monday, plan.Date)
	assert.Equal(t, time.Monday, plan.Weekday)
}
