package dto

import (
	"time"

	"github.com/radius-admin/lineitem-console/internal/models"
)

// CreativeSelection identifies one candidate picked in the add dialog.
type CreativeSelection struct {
	ID    int    `json:"id" validate:"required"`
	Label string `json:"label" validate:"required"`
}

// AddCreativesRequest attaches one or more candidates to the line item.
type AddCreativesRequest struct {
	Creatives []CreativeSelection `json:"creatives" validate:"min=1,dive"`
}

// WeightChangeRequest carries a raw weight edit. Value is the untrimmed text
// from the input field; the service parses and clamps it.
type WeightChangeRequest struct {
	CreativeID int    `json:"creative_id" validate:"required"`
	Value      string `json:"value"`
}

// StatusChangeRequest toggles a creative's active flag. NewDefaultID must be
// supplied when deactivating the current default while others remain.
type StatusChangeRequest struct {
	CreativeID   int  `json:"creative_id" validate:"required"`
	Active       bool `json:"active"`
	NewDefaultID *int `json:"new_default_id,omitempty"`
}

// DeleteCreativeRequest removes a creative, optionally reassigning default.
type DeleteCreativeRequest struct {
	CreativeID   int  `json:"creative_id" validate:"required"`
	NewDefaultID *int `json:"new_default_id,omitempty"`
}

// SlotField names the editable boundary of a time slot.
type SlotField string

const (
	SlotFieldFrom SlotField = "from"
	SlotFieldTo   SlotField = "to"
)

// TimeSlotChangeRequest edits one boundary of one slot in a schedule draft.
type TimeSlotChangeRequest struct {
	Day       models.Weekday `json:"day" validate:"min=0,max=6"`
	SlotIndex int            `json:"slot_index" validate:"min=0"`
	Field     SlotField      `json:"field" validate:"required,oneof=from to"`
	Value     string         `json:"value" validate:"required"`
}

// TitleChangeRequest renames the line item.
type TitleChangeRequest struct {
	Title string `json:"title" validate:"required"`
}

// DateChangeRequest updates one of the line item flight dates.
type DateChangeRequest struct {
	Date time.Time `json:"date" validate:"required"`
}

// AddDistributionTagRequest publishes a new distribution tag.
type AddDistributionTagRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddPixelRequest links a tracking pixel to the line item.
type AddPixelRequest struct {
	Name       string   `json:"name" validate:"required"`
	EventTypes []string `json:"event_types" validate:"min=1,dive,required"`
	URL        string   `json:"url" validate:"required,url"`
}
