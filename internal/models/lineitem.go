package models

import "time"

// DistributionTag is a published delivery URL for the line item.
type DistributionTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pixel is a tracking pixel linked to the line item.
type Pixel struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	EventTypes []string `json:"event_types"`
	URL        string   `json:"url"`
}

// LineItem aggregates the creatives, flight dates and delivery artifacts the
// console edits. All mutations flow through the services and produce a fresh
// snapshot.
type LineItem struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	Timezone  Timezone          `json:"timezone"`
	Creatives []Creative        `json:"creatives"`
	Tags      []DistributionTag `json:"tags"`
	Pixels    []Pixel           `json:"pixels"`
}

// Clone returns a deep copy of the line item.
func (li *LineItem) Clone() *LineItem {
	if li == nil {
		return nil
	}
	out := *li
	out.Creatives = make([]Creative, len(li.Creatives))
	for i, c := range li.Creatives {
		out.Creatives[i] = c.Clone()
	}
	out.Tags = make([]DistributionTag, len(li.Tags))
	copy(out.Tags, li.Tags)
	out.Pixels = make([]Pixel, len(li.Pixels))
	for i, p := range li.Pixels {
		cp := p
		cp.EventTypes = append([]string(nil), p.EventTypes...)
		out.Pixels[i] = cp
	}
	return &out
}

// Creative returns a mutable reference to the creative with the given id.
func (li *LineItem) Creative(id int) *Creative {
	for i := range li.Creatives {
		if li.Creatives[i].ID == id {
			return &li.Creatives[i]
		}
	}
	return nil
}

// HasCreative reports whether the creative id is already attached.
func (li *LineItem) HasCreative(id int) bool {
	return li.Creative(id) != nil
}

// ActiveCount returns the number of creatives with active status.
func (li *LineItem) ActiveCount() int {
	n := 0
	for i := range li.Creatives {
		if li.Creatives[i].Status {
			n++
		}
	}
	return n
}

// DefaultCreative returns the creative flagged as default, or nil.
func (li *LineItem) DefaultCreative() *Creative {
	for i := range li.Creatives {
		if li.Creatives[i].IsDefault {
			return &li.Creatives[i]
		}
	}
	return nil
}

// AvailableOptions filters a candidate pool down to ids not yet attached.
func (li *LineItem) AvailableOptions(pool []CreativeOption) []CreativeOption {
	out := make([]CreativeOption, 0, len(pool))
	for _, opt := range pool {
		if !li.HasCreative(opt.ID) {
			out = append(out, opt)
		}
	}
	return out
}
