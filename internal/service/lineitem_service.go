package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radius-admin/lineitem-console/internal/dto"
	"github.com/radius-admin/lineitem-console/internal/models"
	appErrors "github.com/radius-admin/lineitem-console/pkg/errors"
)

// LineItemService edits the line item shell: title, flight dates,
// distribution tags and pixels.
type LineItemService struct {
	repo      lineItemRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLineItemService builds the service.
func NewLineItemService(repo lineItemRepository, validate *validator.Validate, logger *zap.Logger) *LineItemService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LineItemService{repo: repo, validator: validate, logger: logger}
}

// Get returns the current snapshot.
func (s *LineItemService) Get() *models.LineItem {
	return s.repo.Get()
}

// SetTitle renames the line item. Whitespace-only titles are rejected.
func (s *LineItemService) SetTitle(req dto.TitleChangeRequest) (*models.LineItem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title must not be empty")
	}
	return s.repo.Update(func(li *models.LineItem) error {
		li.Title = title
		return nil
	})
}

// SetStartDate moves the flight start. A start pushed past the current end
// drags the end date along with it.
func (s *LineItemService) SetStartDate(req dto.DateChangeRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid date payload")
	}
	return s.repo.Update(func(li *models.LineItem) error {
		li.StartDate = req.Date
		if !li.EndDate.IsZero() && req.Date.After(li.EndDate) {
			li.EndDate = req.Date
		}
		return nil
	})
}

// SetEndDate moves the flight end. An end before the current start is
// rejected.
func (s *LineItemService) SetEndDate(req dto.DateChangeRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid date payload")
	}
	return s.repo.Update(func(li *models.LineItem) error {
		if !li.StartDate.IsZero() && req.Date.Before(li.StartDate) {
			return appErrors.Clone(appErrors.ErrValidation, "end date must not be before start date")
		}
		li.EndDate = req.Date
		return nil
	})
}

// AddDistributionTag publishes a new tag with a generated id and delivery
// URL.
func (s *LineItemService) AddDistributionTag(req dto.AddDistributionTagRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid distribution tag payload")
	}
	tagID := uuid.NewString()
	return s.repo.Update(func(li *models.LineItem) error {
		li.Tags = append(li.Tags, models.DistributionTag{
			ID:   tagID,
			Name: req.Name,
			URL:  fmt.Sprintf("https://radius.video/v1/distributions/%s?line-item-id=%s", tagID, li.ID),
		})
		return nil
	})
}

// AddPixel links a tracking pixel with a generated id.
func (s *LineItemService) AddPixel(req dto.AddPixelRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid pixel payload")
	}
	pixelID := uuid.NewString()
	return s.repo.Update(func(li *models.LineItem) error {
		li.Pixels = append(li.Pixels, models.Pixel{
			ID:         pixelID,
			Name:       req.Name,
			EventTypes: append([]string(nil), req.EventTypes...),
			URL:        req.URL,
		})
		s.logger.Info("pixel linked", zap.String("pixel_id", pixelID), zap.String("name", req.Name))
		return nil
	})
}
