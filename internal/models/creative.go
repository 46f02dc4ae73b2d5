package models

import "time"

// PlaybackMode describes how a creative is delivered.
type PlaybackMode string

const (
	PlaybackModeCTV PlaybackMode = "CTV"
	PlaybackModeWeb PlaybackMode = "Web"
)

// Creative is one schedulable, weightable unit attached to a line item.
// Weighting is an integer percentage; redistribution keeps the active
// creatives' weights summing to 100, give or take rounding when pinned
// weights are scaled.
type Creative struct {
	ID              int                 `json:"id"`
	Name            string              `json:"name"`
	PlaybackMode    PlaybackMode        `json:"playback_mode"`
	Status          bool                `json:"status"`
	Weighting       int                 `json:"weighting"`
	HasCustomWeight bool                `json:"has_custom_weight"`
	OriginalWeight  *int                `json:"original_weight,omitempty"`
	IsDefault       bool                `json:"is_default"`
	StartDate       *time.Time          `json:"start_date,omitempty"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	Dayparting      *DaypartingSchedule `json:"dayparting,omitempty"`
	ThumbnailURL    string              `json:"thumbnail_url,omitempty"`
}

// Clone returns a deep copy of the creative.
func (c Creative) Clone() Creative {
	out := c
	if c.OriginalWeight != nil {
		w := *c.OriginalWeight
		out.OriginalWeight = &w
	}
	if c.StartDate != nil {
		t := *c.StartDate
		out.StartDate = &t
	}
	if c.EndDate != nil {
		t := *c.EndDate
		out.EndDate = &t
	}
	out.Dayparting = c.Dayparting.Clone()
	return out
}

// CreativeOption is a candidate available to attach to a line item. The
// engine only relies on the id being unique.
type CreativeOption struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}
