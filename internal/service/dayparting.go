package service

import (
	"sort"

	"github.com/radius-admin/lineitem-console/internal/models"
	"github.com/radius-admin/lineitem-console/internal/timeopt"
)

// Fallback windows tried in order when the gap scan finds nothing free. The
// last-resort slot is returned even when it overlaps.
var (
	eveningSlot    = models.TimeSlot{From: "6:00 PM", To: "11:59 PM"}
	morningSlot    = models.TimeSlot{From: "12:00 AM", To: "8:00 AM"}
	lastResortSlot = models.TimeSlot{From: "11:30 PM", To: "11:59 PM"}
)

// Overlaps reports whether two slots share any time. Slots meeting exactly at
// a boundary (one ends where the other starts) do not overlap; back-to-back
// windows are allowed.
func Overlaps(a, b models.TimeSlot) bool {
	aFrom, aTo := timeopt.Minutes(a.From), timeopt.Minutes(a.To)
	bFrom, bTo := timeopt.Minutes(b.From), timeopt.Minutes(b.To)
	if aTo == bFrom || bTo == aFrom {
		return false
	}
	return aFrom < bTo && bFrom < aTo
}

// ValidSlot reports whether the slot's start strictly precedes its end.
func ValidSlot(slot models.TimeSlot) bool {
	return timeopt.Before(slot.From, slot.To)
}

// hasInternalConflict reports whether candidate overlaps any slot in the day
// other than the one at slotIndex.
func hasInternalConflict(day *models.DaySchedule, candidate models.TimeSlot, slotIndex int) bool {
	for i, existing := range day.TimeSlots {
		if i == slotIndex {
			continue
		}
		if Overlaps(candidate, existing) {
			return true
		}
	}
	return false
}

// hasExternalConflict reports whether candidate overlaps any other creative's
// enabled slots for the same weekday. The creative being edited is excluded
// by id, never by position.
func hasExternalConflict(li *models.LineItem, creativeID int, day models.Weekday, candidate models.TimeSlot) bool {
	for _, existing := range collectOtherSlots(li, creativeID, day) {
		if Overlaps(candidate, existing) {
			return true
		}
	}
	return false
}

// collectOtherSlots gathers every enabled slot other creatives hold on the
// given weekday.
func collectOtherSlots(li *models.LineItem, creativeID int, day models.Weekday) []models.TimeSlot {
	var slots []models.TimeSlot
	for i := range li.Creatives {
		c := &li.Creatives[i]
		if c.ID == creativeID || c.Dayparting == nil {
			continue
		}
		ds := c.Dayparting.Day(day)
		if !ds.Enabled {
			continue
		}
		slots = append(slots, ds.TimeSlots...)
	}
	return slots
}

func sortSlotsByStart(slots []models.TimeSlot) []models.TimeSlot {
	sorted := make([]models.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return timeopt.Minutes(sorted[i].From) < timeopt.Minutes(sorted[j].From)
	})
	return sorted
}

func sortSlotsByEndDesc(slots []models.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return timeopt.Minutes(slots[i].To) > timeopt.Minutes(slots[j].To)
	})
}

func anyOverlap(slots []models.TimeSlot, candidate models.TimeSlot) bool {
	for _, slot := range slots {
		if Overlaps(candidate, slot) {
			return true
		}
	}
	return false
}

// FindFreeSlot computes a window on the given weekday that avoids every other
// creative's slots. With nothing scheduled the full-day default is returned.
// Otherwise the day is scanned for the first gap (before the first slot,
// after the last, or between consecutive slots); failing that the evening and
// morning fallbacks are tried, and the late-night last resort is returned
// even if it collides.
func FindFreeSlot(li *models.LineItem, creativeID int, day models.Weekday) models.TimeSlot {
	existing := collectOtherSlots(li, creativeID, day)
	if len(existing) == 0 {
		return models.DefaultTimeSlot()
	}

	sorted := sortSlotsByStart(existing)
	for i, current := range sorted {
		if i == 0 && timeopt.Minutes(current.From) > 0 {
			to := timeopt.DayEnd
			if prev, ok := timeopt.EntryBefore(current.From); ok {
				to = prev
			}
			return models.TimeSlot{From: timeopt.DayStart, To: timeopt.NextMinute(to)}
		}

		if i == len(sorted)-1 && timeopt.Minutes(current.To) < timeopt.Minutes(timeopt.DayEnd) {
			return models.TimeSlot{From: timeopt.NextMinute(current.To), To: timeopt.DayEnd}
		}

		if i+1 < len(sorted) {
			next := sorted[i+1]
			if timeopt.Minutes(current.To) < timeopt.Minutes(next.From)-1 {
				to := timeopt.DayEnd
				if prev, ok := timeopt.EntryBefore(next.From); ok {
					to = prev
				}
				return models.TimeSlot{From: timeopt.NextMinute(current.To), To: to}
			}
		}
	}

	if !anyOverlap(existing, eveningSlot) {
		return eveningSlot
	}
	if !anyOverlap(existing, morningSlot) {
		return morningSlot
	}
	return lastResortSlot
}
