package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineItemCloneIsDeep(t *testing.T) {
	orig := 60
	li := &LineItem{
		ID:    "li-1",
		Title: "Spring Campaign",
		Creatives: []Creative{
			{ID: 1, Status: true, Weighting: 40, OriginalWeight: &orig, Dayparting: NewDaypartingSchedule(TimezoneCST)},
		},
		Tags:   []DistributionTag{{ID: "t-1", Name: "Tag"}},
		Pixels: []Pixel{{ID: "p-1", Name: "Pixel", EventTypes: []string{"impression"}}},
	}

	clone := li.Clone()
	clone.Creatives[0].Weighting = 99
	*clone.Creatives[0].OriginalWeight = 1
	clone.Creatives[0].Dayparting.Day(Monday).Enabled = true
	clone.Tags[0].Name = "mutated"
	clone.Pixels[0].EventTypes[0] = "mutated"

	require.Equal(t, 40, li.Creatives[0].Weighting)
	require.Equal(t, 60, *li.Creatives[0].OriginalWeight)
	require.False(t, li.Creatives[0].Dayparting.Day(Monday).Enabled)
	require.Equal(t, "Tag", li.Tags[0].Name)
	require.Equal(t, "impression", li.Pixels[0].EventTypes[0])
}

func TestLineItemLookups(t *testing.T) {
	li := &LineItem{
		Creatives: []Creative{
			{ID: 1, Status: true, IsDefault: true},
			{ID: 2, Status: false},
			{ID: 3, Status: true},
		},
	}

	require.NotNil(t, li.Creative(2))
	require.Nil(t, li.Creative(9))
	require.True(t, li.HasCreative(3))
	require.Equal(t, 2, li.ActiveCount())
	require.Equal(t, 1, li.DefaultCreative().ID)
}

func TestAvailableOptionsFiltersAttached(t *testing.T) {
	li := &LineItem{Creatives: []Creative{{ID: 1}, {ID: 3}}}
	pool := []CreativeOption{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	out := li.AvailableOptions(pool)
	require.Equal(t, []CreativeOption{{ID: 2}, {ID: 4}}, out)
}
