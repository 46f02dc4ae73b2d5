package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radius-admin/lineitem-console/internal/dto"
	"github.com/radius-admin/lineitem-console/internal/models"
	"github.com/radius-admin/lineitem-console/internal/store"
	appErrors "github.com/radius-admin/lineitem-console/pkg/errors"
)

func newTestStore(creatives ...models.Creative) *store.LineItemStore {
	return store.NewLineItemStore(&models.LineItem{
		ID:        "li-1",
		Title:     "Spring Campaign",
		Timezone:  models.TimezoneCST,
		Creatives: creatives,
	})
}

func selections(ids ...int) dto.AddCreativesRequest {
	var req dto.AddCreativesRequest
	for _, id := range ids {
		req.Creatives = append(req.Creatives, dto.CreativeSelection{
			ID:    id,
			Label: "Creative",
		})
	}
	return req
}

func TestAddCreativesAssignsWeightsAndDefault(t *testing.T) {
	svc := NewCreativeService(newTestStore(), nil, nil)

	li, err := svc.AddCreatives(selections(1, 2, 3))
	require.NoError(t, err)

	require.Equal(t, map[int]int{1: 34, 2: 33, 3: 33}, weightsByID(li.Creatives))
	def := li.DefaultCreative()
	require.NotNil(t, def)
	require.Equal(t, 1, def.ID)
	for _, c := range li.Creatives {
		require.True(t, c.Status)
	}
}

func TestAddCreativesRejectsDuplicate(t *testing.T) {
	svc := NewCreativeService(newTestStore(creative(1, true)), nil, nil)

	_, err := svc.AddCreatives(selections(1))
	require.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestAddCreativesKeepsExistingDefault(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def), nil, nil)

	li, err := svc.AddCreatives(selections(2))
	require.NoError(t, err)
	require.Equal(t, 1, li.DefaultCreative().ID)
}

func TestSetStatusRejectsLastActive(t *testing.T) {
	svc := NewCreativeService(newTestStore(creative(1, true), creative(2, false)), nil, nil)

	_, err := svc.SetStatus(dto.StatusChangeRequest{CreativeID: 1, Active: false})
	require.ErrorIs(t, err, appErrors.ErrLastActiveCreative)

	// Rejected toggle leaves the snapshot alone.
	require.True(t, svc.repo.Get().Creative(1).Status)
}

func TestSetStatusDeactivateRedistributes(t *testing.T) {
	svc := NewCreativeService(newTestStore(creative(1, true), creative(2, true), creative(3, true)), nil, nil)

	li, err := svc.SetStatus(dto.StatusChangeRequest{CreativeID: 3, Active: false})
	require.NoError(t, err)

	require.False(t, li.Creative(3).Status)
	require.Equal(t, 50, li.Creative(1).Weighting)
	require.Equal(t, 50, li.Creative(2).Weighting)
}

func TestSetStatusDeactivateDefaultRequiresReassignment(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def, creative(2, true)), nil, nil)

	_, err := svc.SetStatus(dto.StatusChangeRequest{CreativeID: 1, Active: false})
	require.ErrorIs(t, err, appErrors.ErrDefaultReassignment)

	target := 2
	li, err := svc.SetStatus(dto.StatusChangeRequest{CreativeID: 1, Active: false, NewDefaultID: &target})
	require.NoError(t, err)
	require.Equal(t, 2, li.DefaultCreative().ID)
	require.Equal(t, 100, li.Creative(2).Weighting)
}

func TestSetStatusReactivationRestoresPinnedWeight(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def, creative(2, true), creative(3, true)), nil, nil)

	_, err := svc.SetWeight(dto.WeightChangeRequest{CreativeID: 1, Value: "40"})
	require.NoError(t, err)

	target := 2
	_, err = svc.SetStatus(dto.StatusChangeRequest{CreativeID: 1, Active: false, NewDefaultID: &target})
	require.NoError(t, err)

	li, err := svc.SetStatus(dto.StatusChangeRequest{CreativeID: 1, Active: true})
	require.NoError(t, err)

	c := li.Creative(1)
	require.True(t, c.Status)
	require.True(t, c.HasCustomWeight)
	require.Equal(t, 40, c.Weighting)
	require.Equal(t, 30, li.Creative(2).Weighting)
	require.Equal(t, 30, li.Creative(3).Weighting)
}

func TestSetStatusNoOpWhenUnchanged(t *testing.T) {
	svc := NewCreativeService(newTestStore(creative(1, true), creative(2, true)), nil, nil)

	li, err := svc.SetStatus(dto.StatusChangeRequest{CreativeID: 1, Active: true})
	require.NoError(t, err)
	require.Zero(t, li.Creative(1).Weighting) // no redistribution ran
}

func TestSetStatusUnknownCreative(t *testing.T) {
	svc := NewCreativeService(newTestStore(creative(1, true)), nil, nil)

	_, err := svc.SetStatus(dto.StatusChangeRequest{CreativeID: 9, Active: false})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSetWeightPinsAndRedistributes(t *testing.T) {
	svc := NewCreativeService(newTestStore(creative(1, true), creative(2, true), creative(3, true)), nil, nil)

	li, err := svc.SetWeight(dto.WeightChangeRequest{CreativeID: 1, Value: "90"})
	require.NoError(t, err)

	c := li.Creative(1)
	require.True(t, c.HasCustomWeight)
	require.NotNil(t, c.OriginalWeight)
	require.Equal(t, 90, *c.OriginalWeight)
	require.Equal(t, map[int]int{1: 90, 2: 5, 3: 5}, weightsByID(li.Creatives))
}

func TestSetWeightParsesAndClamps(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"150", 100},
		{"-5", 0},
		{"abc", 0},
		{"", 0},
		{"42", 42},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, parseWeight(tt.value), "value %q", tt.value)
	}
}

func TestResetWeightsClearsPins(t *testing.T) {
	svc := NewCreativeService(newTestStore(creative(1, true), creative(2, true)), nil, nil)

	_, err := svc.SetWeight(dto.WeightChangeRequest{CreativeID: 1, Value: "80"})
	require.NoError(t, err)

	li, err := svc.ResetWeights()
	require.NoError(t, err)

	for _, c := range li.Creatives {
		require.False(t, c.HasCustomWeight)
		require.Nil(t, c.OriginalWeight)
		require.Equal(t, 50, c.Weighting)
	}
}

func TestSetDefaultRequiresActiveTarget(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def, creative(2, false)), nil, nil)

	_, err := svc.SetDefault(2)
	require.ErrorIs(t, err, appErrors.ErrValidation)

	li, err := svc.SetDefault(1)
	require.NoError(t, err)
	require.Equal(t, 1, li.DefaultCreative().ID)
}

func TestSetDefaultMovesFlag(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def, creative(2, true)), nil, nil)

	li, err := svc.SetDefault(2)
	require.NoError(t, err)

	require.False(t, li.Creative(1).IsDefault)
	require.True(t, li.Creative(2).IsDefault)
}

func TestDeleteCreativeRedistributes(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def, creative(2, true), creative(3, true)), nil, nil)

	li, err := svc.DeleteCreative(dto.DeleteCreativeRequest{CreativeID: 3})
	require.NoError(t, err)

	require.Len(t, li.Creatives, 2)
	require.False(t, li.HasCreative(3))
	require.Equal(t, 50, li.Creative(1).Weighting)
	require.Equal(t, 50, li.Creative(2).Weighting)
}

func TestDeleteDefaultRequiresReassignment(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def, creative(2, true)), nil, nil)

	_, err := svc.DeleteCreative(dto.DeleteCreativeRequest{CreativeID: 1})
	require.ErrorIs(t, err, appErrors.ErrDefaultReassignment)

	target := 2
	li, err := svc.DeleteCreative(dto.DeleteCreativeRequest{CreativeID: 1, NewDefaultID: &target})
	require.NoError(t, err)
	require.Equal(t, 2, li.DefaultCreative().ID)
	require.Equal(t, 100, li.Creative(2).Weighting)
}

func TestDeleteLastCreativeAllowed(t *testing.T) {
	def := creative(1, true)
	def.IsDefault = true
	svc := NewCreativeService(newTestStore(def), nil, nil)

	li, err := svc.DeleteCreative(dto.DeleteCreativeRequest{CreativeID: 1})
	require.NoError(t, err)
	require.Empty(t, li.Creatives)
}

func TestActiveWeightSumInvariant(t *testing.T) {
	svc := NewCreativeService(newTestStore(), nil, nil)

	_, err := svc.AddCreatives(selections(1, 2, 3, 4))
	require.NoError(t, err)

	_, err = svc.SetWeight(dto.WeightChangeRequest{CreativeID: 2, Value: "25"})
	require.NoError(t, err)

	_, err = svc.SetStatus(dto.StatusChangeRequest{CreativeID: 4, Active: false})
	require.NoError(t, err)

	_, err = svc.SetStatus(dto.StatusChangeRequest{CreativeID: 4, Active: true})
	require.NoError(t, err)

	li, err := svc.ResetWeights()
	require.NoError(t, err)
	require.Equal(t, 100, activeWeightSum(li.Creatives))
}

func TestFailedUpdateLeavesStoreUntouched(t *testing.T) {
	st := newTestStore(creative(1, true), creative(2, true))
	svc := NewCreativeService(st, nil, nil)

	_, err := svc.SetWeight(dto.WeightChangeRequest{CreativeID: 1, Value: "60"})
	require.NoError(t, err)

	_, err = svc.DeleteCreative(dto.DeleteCreativeRequest{CreativeID: 9})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))

	li := st.Get()
	require.Len(t, li.Creatives, 2)
	require.Equal(t, 60, li.Creative(1).Weighting)
}
