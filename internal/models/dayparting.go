package models

import (
	"strings"

	"github.com/radius-admin/lineitem-console/internal/timeopt"
)

// Weekday indexes the seven schedule days in canonical Monday-first order.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the fixed size of a weekly schedule.
const DaysPerWeek = 7

var weekdayNames = [DaysPerWeek]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var weekdayAbbreviations = [DaysPerWeek]string{"M", "T", "W", "Th", "F", "Sa", "Su"}

func (d Weekday) String() string {
	if d < 0 || d >= DaysPerWeek {
		return "unknown"
	}
	return weekdayNames[d]
}

// Abbreviation returns the short label shown in day summaries.
func (d Weekday) Abbreviation() string {
	if d < 0 || d >= DaysPerWeek {
		return "?"
	}
	return weekdayAbbreviations[d]
}

// Weekdays returns all days in canonical iteration order.
func Weekdays() [DaysPerWeek]Weekday {
	return [DaysPerWeek]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Timezone is the schedule's display timezone.
type Timezone string

const (
	TimezoneEST Timezone = "EST"
	TimezoneCST Timezone = "CST"
	TimezoneMST Timezone = "MST"
	TimezonePST Timezone = "PST"
)

// Timezones lists the selectable options in display order.
func Timezones() []Timezone {
	return []Timezone{TimezoneEST, TimezoneCST, TimezoneMST, TimezonePST}
}

// Valid reports whether tz is one of the selectable options.
func (tz Timezone) Valid() bool {
	switch tz {
	case TimezoneEST, TimezoneCST, TimezoneMST, TimezonePST:
		return true
	}
	return false
}

// TimeSlot is an ordered pair of clock labels within a single day.
type TimeSlot struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DefaultTimeSlot spans the whole day using the catalog endpoints.
func DefaultTimeSlot() TimeSlot {
	return TimeSlot{From: timeopt.DayStart, To: timeopt.DayEnd}
}

// DaySchedule holds the enable flag and slot list for one weekday. When
// Enabled is false the slot list is retained so re-enabling restores it.
type DaySchedule struct {
	Enabled   bool       `json:"enabled"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// Clone returns a deep copy of the day schedule.
func (d DaySchedule) Clone() DaySchedule {
	out := DaySchedule{Enabled: d.Enabled}
	if d.TimeSlots != nil {
		out.TimeSlots = make([]TimeSlot, len(d.TimeSlots))
		copy(out.TimeSlots, d.TimeSlots)
	}
	return out
}

// DaypartingSchedule is a creative's weekly eligibility calendar. It is owned
// exclusively by one creative and replaced wholesale on save.
type DaypartingSchedule struct {
	Timezone Timezone                  `json:"timezone"`
	Days     [DaysPerWeek]DaySchedule `json:"days"`
}

// NewDaypartingSchedule builds a schedule with every day disabled and primed
// with the full-day default slot.
func NewDaypartingSchedule(tz Timezone) *DaypartingSchedule {
	s := &DaypartingSchedule{Timezone: tz}
	for i := range s.Days {
		s.Days[i] = DaySchedule{Enabled: false, TimeSlots: []TimeSlot{DefaultTimeSlot()}}
	}
	return s
}

// Day returns a mutable reference to the given weekday's schedule.
func (s *DaypartingSchedule) Day(d Weekday) *DaySchedule {
	return &s.Days[d]
}

// Clone returns a deep copy of the schedule.
func (s *DaypartingSchedule) Clone() *DaypartingSchedule {
	if s == nil {
		return nil
	}
	out := &DaypartingSchedule{Timezone: s.Timezone}
	for i := range s.Days {
		out.Days[i] = s.Days[i].Clone()
	}
	return out
}

// EnabledDays returns the enabled weekdays in canonical order.
func (s *DaypartingSchedule) EnabledDays() []Weekday {
	var days []Weekday
	for _, d := range Weekdays() {
		if s.Days[d].Enabled {
			days = append(days, d)
		}
	}
	return days
}

// Summary renders the enabled days as a short display string, e.g. "M, W, F".
// An empty schedule renders as "None".
func (s *DaypartingSchedule) Summary() string {
	days := s.EnabledDays()
	if len(days) == 0 {
		return "None"
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = d.Abbreviation()
	}
	return strings.Join(parts, ", ")
}
