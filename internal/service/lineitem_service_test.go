package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/radius-admin/lineitem-console/internal/dto"
	appErrors "github.com/radius-admin/lineitem-console/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSetTitleTrims(t *testing.T) {
	svc := NewLineItemService(newTestStore(), nil, nil)

	li, err := svc.SetTitle(dto.TitleChangeRequest{Title: "  Fall Push  "})
	require.NoError(t, err)
	require.Equal(t, "Fall Push", li.Title)
}

func TestSetTitleRejectsEmpty(t *testing.T) {
	svc := NewLineItemService(newTestStore(), nil, nil)

	_, err := svc.SetTitle(dto.TitleChangeRequest{Title: "   "})
	require.ErrorIs(t, err, appErrors.ErrValidation)
	require.Equal(t, "Spring Campaign", svc.Get().Title)
}

func TestSetStartDateDragsEndDate(t *testing.T) {
	svc := NewLineItemService(newTestStore(), nil, nil)

	_, err := svc.SetEndDate(dto.DateChangeRequest{Date: date(2026, time.March, 10)})
	require.NoError(t, err)

	li, err := svc.SetStartDate(dto.DateChangeRequest{Date: date(2026, time.April, 1)})
	require.NoError(t, err)

	require.Equal(t, date(2026, time.April, 1), li.StartDate)
	require.Equal(t, date(2026, time.April, 1), li.EndDate)
}

func TestSetEndDateBeforeStartRejected(t *testing.T) {
	svc := NewLineItemService(newTestStore(), nil, nil)

	_, err := svc.SetStartDate(dto.DateChangeRequest{Date: date(2026, time.April, 1)})
	require.NoError(t, err)

	_, err = svc.SetEndDate(dto.DateChangeRequest{Date: date(2026, time.March, 1)})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAddDistributionTagBuildsURL(t *testing.T) {
	svc := NewLineItemService(newTestStore(), nil, nil)

	li, err := svc.AddDistributionTag(dto.AddDistributionTagRequest{Name: "VAST Tag"})
	require.NoError(t, err)

	require.Len(t, li.Tags, 1)
	tag := li.Tags[0]
	require.NotEmpty(t, tag.ID)
	require.Equal(t, "VAST Tag", tag.Name)
	require.Contains(t, tag.URL, "https://radius.video/v1/distributions/"+tag.ID)
	require.Contains(t, tag.URL, "line-item-id=li-1")
}

func TestAddPixel(t *testing.T) {
	svc := NewLineItemService(newTestStore(), nil, nil)

	li, err := svc.AddPixel(dto.AddPixelRequest{
		Name:       "Checkout",
		EventTypes: []string{"impression", "complete"},
		URL:        "https://tracker.example.com/p",
	})
	require.NoError(t, err)

	require.Len(t, li.Pixels, 1)
	require.Equal(t, "Checkout", li.Pixels[0].Name)
	require.NotEmpty(t, li.Pixels[0].ID)
}

func TestAddPixelRejectsBadPayload(t *testing.T) {
	svc := NewLineItemService(newTestStore(), nil, nil)

	_, err := svc.AddPixel(dto.AddPixelRequest{Name: "Checkout", URL: "not a url"})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}
