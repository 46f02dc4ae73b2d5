package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radius-admin/lineitem-console/internal/models"
)

func seedItem() *models.LineItem {
	return &models.LineItem{
		ID:    "li-1",
		Title: "Spring Campaign",
		Creatives: []models.Creative{
			{ID: 1, Name: "Hero 30s", Status: true, Weighting: 100},
		},
	}
}

func TestGetReturnsIsolatedSnapshot(t *testing.T) {
	s := NewLineItemStore(seedItem())

	snap := s.Get()
	snap.Title = "mutated"
	snap.Creatives[0].Weighting = 7

	fresh := s.Get()
	require.Equal(t, "Spring Campaign", fresh.Title)
	require.Equal(t, 100, fresh.Creatives[0].Weighting)
}

func TestSeedIsCopied(t *testing.T) {
	seed := seedItem()
	s := NewLineItemStore(seed)

	seed.Title = "mutated after construction"
	require.Equal(t, "Spring Campaign", s.Get().Title)
}

func TestUpdateSwapsOnSuccess(t *testing.T) {
	s := NewLineItemStore(seedItem())

	out, err := s.Update(func(li *models.LineItem) error {
		li.Title = "Renamed"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", out.Title)
	require.Equal(t, "Renamed", s.Get().Title)

	// The returned snapshot is detached from the stored one.
	out.Title = "mutated"
	require.Equal(t, "Renamed", s.Get().Title)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := NewLineItemStore(seedItem())
	boom := errors.New("boom")

	out, err := s.Update(func(li *models.LineItem) error {
		li.Title = "half done"
		li.Creatives = nil
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Nil(t, out)

	fresh := s.Get()
	require.Equal(t, "Spring Campaign", fresh.Title)
	require.Len(t, fresh.Creatives, 1)
}
