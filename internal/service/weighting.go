package service

import (
	"math"
	"sort"

	"github.com/radius-admin/lineitem-console/internal/models"
)

// Redistribute recomputes creative weights so the active creatives share the
// 100% budget. The input is never mutated; the result preserves order and
// touches only Weighting and OriginalWeight.
//
// Priority order: a single active creative always gets 100; with no custom
// weights the pool splits evenly with the remainder going to the lowest ids;
// custom weights above 100 are scaled down proportionally (non-custom drop to
// 0); otherwise non-custom creatives share whatever the custom ones leave;
// when every active creative is custom and under 100 they are scaled up.
// Proportional scaling rounds half away from zero and deliberately skips a
// final renormalization pass, so the post-scale sum may drift to 99 or 101.
func Redistribute(creatives []models.Creative) []models.Creative {
	out := cloneCreatives(creatives)

	var active []*models.Creative
	for i := range out {
		if out[i].Status {
			active = append(active, &out[i])
		}
	}
	if len(active) == 0 {
		return out
	}
	if len(active) == 1 {
		active[0].Weighting = 100
		return out
	}

	var custom, nonCustom []*models.Creative
	for _, c := range active {
		if c.HasCustomWeight {
			custom = append(custom, c)
		} else {
			nonCustom = append(nonCustom, c)
		}
	}

	if len(custom) == 0 {
		assignEvenSplit(active, 100)
		return out
	}

	totalCustom := 0
	for _, c := range custom {
		totalCustom += c.Weighting
	}

	switch {
	case totalCustom > 100:
		scaleCustomWeights(custom, totalCustom)
		for _, c := range nonCustom {
			c.Weighting = 0
		}
	case len(nonCustom) > 0:
		remaining := 100 - totalCustom
		if remaining > 0 {
			assignEvenSplit(nonCustom, remaining)
		} else {
			for _, c := range nonCustom {
				c.Weighting = 0
			}
		}
	case totalCustom > 0 && totalCustom < 100:
		scaleCustomWeights(custom, totalCustom)
	}

	return out
}

// assignEvenSplit spreads total across the targets: everyone gets the floor
// share and the first (total mod n) creatives by ascending id get one extra.
func assignEvenSplit(targets []*models.Creative, total int) {
	sorted := make([]*models.Creative, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	base := total / len(sorted)
	remainder := total - base*len(sorted)

	extra := make(map[int]bool, remainder)
	for i := 0; i < remainder; i++ {
		extra[sorted[i%len(sorted)].ID] = true
	}

	for _, c := range targets {
		c.Weighting = base
		if extra[c.ID] {
			c.Weighting++
		}
	}
}

// scaleCustomWeights rescales pinned weights toward a 100 total, recording
// the pre-scale value in OriginalWeight so it can be restored later. An
// already recorded original weight wins over the current weighting.
func scaleCustomWeights(custom []*models.Creative, totalCustom int) {
	scale := 100 / float64(totalCustom)
	for _, c := range custom {
		if c.OriginalWeight == nil {
			w := c.Weighting
			c.OriginalWeight = &w
		}
		c.Weighting = int(math.Round(float64(c.Weighting) * scale))
	}
}

func cloneCreatives(creatives []models.Creative) []models.Creative {
	out := make([]models.Creative, len(creatives))
	for i, c := range creatives {
		out[i] = c.Clone()
	}
	return out
}
