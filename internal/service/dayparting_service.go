package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/radius-admin/lineitem-console/internal/dto"
	"github.com/radius-admin/lineitem-console/internal/models"
	"github.com/radius-admin/lineitem-console/internal/timeopt"
	appErrors "github.com/radius-admin/lineitem-console/pkg/errors"
)

// ScheduleDraft is the working copy the dayparting dialog edits. Canceling a
// draft is simply dropping it; nothing touches the stored line item until
// Save succeeds.
type ScheduleDraft struct {
	CreativeID int
	Schedule   *models.DaypartingSchedule
}

// SlotStatus is the read-only validity report used for error highlighting.
type SlotStatus struct {
	Valid            bool
	InternalConflict bool
	ExternalConflict bool
}

// OK reports whether the slot needs no highlighting.
func (s SlotStatus) OK() bool {
	return s.Valid && !s.InternalConflict && !s.ExternalConflict
}

// DaypartingService edits per-creative weekly schedules with automatic
// conflict avoidance against every other creative on the line item.
type DaypartingService struct {
	repo      lineItemRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDaypartingService builds the service.
func NewDaypartingService(repo lineItemRepository, validate *validator.Validate, logger *zap.Logger) *DaypartingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DaypartingService{repo: repo, validator: validate, logger: logger}
}

// NewDraft opens a draft for the creative, copying its saved schedule or
// priming a fresh one in the line item's timezone.
func (s *DaypartingService) NewDraft(creativeID int) (*ScheduleDraft, error) {
	li := s.repo.Get()
	c := li.Creative(creativeID)
	if c == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("creative %d not found", creativeID))
	}
	schedule := c.Dayparting.Clone()
	if schedule == nil {
		schedule = models.NewDaypartingSchedule(li.Timezone)
	}
	return &ScheduleDraft{CreativeID: creativeID, Schedule: schedule}, nil
}

// SetTimezone changes the draft's display timezone.
func (s *DaypartingService) SetTimezone(draft *ScheduleDraft, tz models.Timezone) error {
	if !tz.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown timezone %q", tz))
	}
	draft.Schedule.Timezone = tz
	return nil
}

// ToggleDay flips a day's enabled flag. Enabling picks the full-day default
// slot when no other creative occupies the day, otherwise a computed free
// slot. Disabling keeps the slot list for later re-enabling.
func (s *DaypartingService) ToggleDay(draft *ScheduleDraft, day models.Weekday) {
	ds := draft.Schedule.Day(day)
	if ds.Enabled {
		ds.Enabled = false
		return
	}

	li := s.repo.Get()
	ds.Enabled = true
	if len(collectOtherSlots(li, draft.CreativeID, day)) == 0 {
		ds.TimeSlots = []models.TimeSlot{models.DefaultTimeSlot()}
		return
	}
	ds.TimeSlots = []models.TimeSlot{FindFreeSlot(li, draft.CreativeID, day)}
}

// SetTimeSlotField applies one boundary edit to a draft slot. Structurally
// invalid candidates are rejected outright. Conflicting candidates go through
// boundary repair: the edited side is snapped next to the nearest occupied
// window, and if that still conflicts the slot is replaced wholesale with a
// computed free slot. The repaired result may differ from the literal edit.
func (s *DaypartingService) SetTimeSlotField(draft *ScheduleDraft, req dto.TimeSlotChangeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid time slot payload")
	}

	ds := draft.Schedule.Day(req.Day)
	if req.SlotIndex >= len(ds.TimeSlots) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no time slot at index %d", req.SlotIndex))
	}

	candidate := ds.TimeSlots[req.SlotIndex]
	switch req.Field {
	case dto.SlotFieldFrom:
		candidate.From = req.Value
	case dto.SlotFieldTo:
		candidate.To = req.Value
	default:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown slot field %q", req.Field))
	}

	if !ValidSlot(candidate) {
		return appErrors.ErrInvalidTimeSlot
	}

	li := s.repo.Get()
	if !s.conflicted(li, draft, req.Day, candidate, req.SlotIndex) {
		ds.TimeSlots[req.SlotIndex] = candidate
		return nil
	}

	if repaired, ok := s.repair(li, draft, req, candidate); ok {
		ds.TimeSlots[req.SlotIndex] = repaired
		return nil
	}

	// No adjacent boundary works; discard the edit and take a free slot.
	free := FindFreeSlot(li, draft.CreativeID, req.Day)
	s.logger.Debug("time slot replaced with free slot",
		zap.Int("creative_id", draft.CreativeID),
		zap.Stringer("day", req.Day),
		zap.String("from", free.From),
		zap.String("to", free.To),
	)
	ds.TimeSlots[req.SlotIndex] = free
	return nil
}

func (s *DaypartingService) conflicted(li *models.LineItem, draft *ScheduleDraft, day models.Weekday, candidate models.TimeSlot, slotIndex int) bool {
	return hasExternalConflict(li, draft.CreativeID, day, candidate) ||
		hasInternalConflict(draft.Schedule.Day(day), candidate, slotIndex)
}

// repair searches other creatives' slots for the nearest non-conflicting
// boundary adjacent to the edited side. Editing the start first tries to snap
// just after the latest earlier window, then to trim the end just before the
// earliest later window; editing the end tries those in the opposite order.
// Partial adjustments persist between attempts, matching the dialog's
// progressive tightening behaviour.
func (s *DaypartingService) repair(li *models.LineItem, draft *ScheduleDraft, req dto.TimeSlotChangeRequest, candidate models.TimeSlot) (models.TimeSlot, bool) {
	existing := collectOtherSlots(li, draft.CreativeID, req.Day)

	earlier := slotsEndingBy(existing, candidate.From)
	later := slotsStartingFrom(existing, candidate.To)

	tryFrom := func() (models.TimeSlot, bool) {
		if len(earlier) == 0 {
			return candidate, false
		}
		newFrom := timeopt.NextMinute(earlier[0].To)
		if !timeopt.Before(newFrom, candidate.To) {
			return candidate, false
		}
		candidate.From = newFrom
		if !s.conflicted(li, draft, req.Day, candidate, req.SlotIndex) {
			return candidate, true
		}
		return candidate, false
	}

	tryTo := func() (models.TimeSlot, bool) {
		if len(later) == 0 {
			return candidate, false
		}
		newTo := timeopt.EntryBeforeOrFirst(later[0].From)
		if !timeopt.Before(candidate.From, newTo) {
			return candidate, false
		}
		candidate.To = newTo
		if !s.conflicted(li, draft, req.Day, candidate, req.SlotIndex) {
			return candidate, true
		}
		return candidate, false
	}

	if req.Field == dto.SlotFieldFrom {
		if repaired, ok := tryFrom(); ok {
			return repaired, true
		}
		if repaired, ok := tryTo(); ok {
			return repaired, true
		}
	} else {
		if repaired, ok := tryTo(); ok {
			return repaired, true
		}
	}

	// Final attempt against the earlier windows regardless of edited field.
	if repaired, ok := tryFrom(); ok {
		return repaired, true
	}
	return candidate, false
}

// slotsEndingBy returns slots ending at or before the limit, latest end
// first.
func slotsEndingBy(slots []models.TimeSlot, limit string) []models.TimeSlot {
	var out []models.TimeSlot
	for _, slot := range slots {
		if timeopt.Minutes(slot.To) <= timeopt.Minutes(limit) {
			out = append(out, slot)
		}
	}
	sortSlotsByEndDesc(out)
	return out
}

// slotsStartingFrom returns slots starting at or after the limit, earliest
// start first.
func slotsStartingFrom(slots []models.TimeSlot, limit string) []models.TimeSlot {
	var out []models.TimeSlot
	for _, slot := range slots {
		if timeopt.Minutes(slot.From) >= timeopt.Minutes(limit) {
			out = append(out, slot)
		}
	}
	return sortSlotsByStart(out)
}

// AddTimeSlot appends a new slot to the day, picked by the same gap search as
// FindFreeSlot but also avoiding the creative's own existing slots.
func (s *DaypartingService) AddTimeSlot(draft *ScheduleDraft, day models.Weekday) {
	li := s.repo.Get()
	ds := draft.Schedule.Day(day)

	combined := append(collectOtherSlots(li, draft.CreativeID, day), ds.TimeSlots...)
	sorted := sortSlotsByStart(combined)

	for i, current := range sorted {
		if i == 0 && timeopt.Minutes(current.From) > 0 {
			ds.TimeSlots = append(ds.TimeSlots, models.TimeSlot{
				From: timeopt.DayStart,
				To:   timeopt.EntryBeforeOrFirst(current.From),
			})
			return
		}

		if i == len(sorted)-1 && timeopt.Minutes(current.To) < timeopt.Minutes(timeopt.DayEnd) {
			ds.TimeSlots = append(ds.TimeSlots, models.TimeSlot{
				From: timeopt.NextMinute(current.To),
				To:   timeopt.DayEnd,
			})
			return
		}

		if i+1 < len(sorted) {
			next := sorted[i+1]
			if timeopt.Minutes(current.To) < timeopt.Minutes(next.From)-1 {
				ds.TimeSlots = append(ds.TimeSlots, models.TimeSlot{
					From: timeopt.NextMinute(current.To),
					To:   timeopt.EntryBeforeOrFirst(next.From),
				})
				return
			}
		}
	}

	if len(sorted) == 0 {
		ds.TimeSlots = append(ds.TimeSlots, models.DefaultTimeSlot())
		return
	}
	if !anyOverlap(combined, eveningSlot) {
		ds.TimeSlots = append(ds.TimeSlots, eveningSlot)
		return
	}
	if !anyOverlap(combined, morningSlot) {
		ds.TimeSlots = append(ds.TimeSlots, morningSlot)
		return
	}
	ds.TimeSlots = append(ds.TimeSlots, lastResortSlot)
}

// RemoveTimeSlot deletes a slot by index. Remaining slots are not
// re-validated.
func (s *DaypartingService) RemoveTimeSlot(draft *ScheduleDraft, day models.Weekday, slotIndex int) error {
	ds := draft.Schedule.Day(day)
	if slotIndex < 0 || slotIndex >= len(ds.TimeSlots) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no time slot at index %d", slotIndex))
	}
	ds.TimeSlots = append(ds.TimeSlots[:slotIndex], ds.TimeSlots[slotIndex+1:]...)
	return nil
}

// Status reports the validity and conflict flags for one draft slot, for
// error highlighting in the dialog. This is a read-only query.
func (s *DaypartingService) Status(draft *ScheduleDraft, day models.Weekday, slotIndex int) (SlotStatus, error) {
	ds := draft.Schedule.Day(day)
	if slotIndex < 0 || slotIndex >= len(ds.TimeSlots) {
		return SlotStatus{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no time slot at index %d", slotIndex))
	}
	slot := ds.TimeSlots[slotIndex]
	li := s.repo.Get()
	return SlotStatus{
		Valid:            ValidSlot(slot),
		InternalConflict: hasInternalConflict(ds, slot, slotIndex),
		ExternalConflict: hasExternalConflict(li, draft.CreativeID, day, slot),
	}, nil
}

// Save validates the draft structurally and commits it to the creative
// wholesale. Any invalid slot on an enabled day aborts the whole save with a
// single error; conflicts do not block saving.
func (s *DaypartingService) Save(draft *ScheduleDraft) (*models.LineItem, error) {
	for _, day := range models.Weekdays() {
		ds := draft.Schedule.Day(day)
		if !ds.Enabled {
			continue
		}
		for _, slot := range ds.TimeSlots {
			if !ValidSlot(slot) {
				return nil, appErrors.Clone(appErrors.ErrInvalidSchedule,
					fmt.Sprintf("%s has a slot whose start time is not before its end time", day))
			}
		}
	}

	return s.repo.Update(func(li *models.LineItem) error {
		c := li.Creative(draft.CreativeID)
		if c == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("creative %d not found", draft.CreativeID))
		}
		c.Dayparting = draft.Schedule.Clone()
		return nil
	})
}
