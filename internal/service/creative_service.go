package service

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/radius-admin/lineitem-console/internal/dto"
	"github.com/radius-admin/lineitem-console/internal/models"
	appErrors "github.com/radius-admin/lineitem-console/pkg/errors"
)

type lineItemRepository interface {
	Get() *models.LineItem
	Update(fn func(*models.LineItem) error) (*models.LineItem, error)
}

// CreativeService owns the creative collection: add/delete, status toggles,
// weight edits and default selection. Every successful call returns the fresh
// line item snapshot for re-render.
type CreativeService struct {
	repo      lineItemRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCreativeService builds the service.
func NewCreativeService(repo lineItemRepository, validate *validator.Validate, logger *zap.Logger) *CreativeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreativeService{repo: repo, validator: validate, logger: logger}
}

// AddCreatives attaches candidates to the line item with weight 0 and active
// status, then redistributes. The first creative ever attached becomes the
// default.
func (s *CreativeService) AddCreatives(req dto.AddCreativesRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid add creatives payload")
	}

	return s.repo.Update(func(li *models.LineItem) error {
		for _, sel := range req.Creatives {
			if li.HasCreative(sel.ID) {
				return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("creative %d is already attached", sel.ID))
			}
			li.Creatives = append(li.Creatives, models.Creative{
				ID:           sel.ID,
				Name:         sel.Label,
				PlaybackMode: models.PlaybackModeCTV,
				Status:       true,
				Weighting:    0,
				ThumbnailURL: fmt.Sprintf("/thumbnails/%d.png", sel.ID),
			})
		}
		if li.DefaultCreative() == nil && len(li.Creatives) > 0 {
			li.Creatives[0].IsDefault = true
		}
		li.Creatives = Redistribute(li.Creatives)
		return ensureSingleDefault(li)
	})
}

// SetStatus toggles a creative's active flag and redistributes the rest.
// Deactivating the only active creative is rejected. Deactivating the default
// while other creatives remain requires a reassignment target. Reactivation
// restores a previously pinned weight as custom.
func (s *CreativeService) SetStatus(req dto.StatusChangeRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid status payload")
	}

	return s.repo.Update(func(li *models.LineItem) error {
		c := li.Creative(req.CreativeID)
		if c == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("creative %d not found", req.CreativeID))
		}
		if c.Status == req.Active {
			return nil
		}

		if !req.Active {
			if c.Status && li.ActiveCount() == 1 {
				return appErrors.ErrLastActiveCreative
			}
			if c.IsDefault && len(li.Creatives) > 1 {
				if err := s.reassignDefault(li, c.ID, req.NewDefaultID); err != nil {
					return err
				}
			}
			c.Status = false
		} else {
			c.Status = true
			if c.OriginalWeight != nil {
				c.Weighting = *c.OriginalWeight
				c.HasCustomWeight = true
			}
		}

		li.Creatives = Redistribute(li.Creatives)
		return ensureSingleDefault(li)
	})
}

// SetWeight applies a direct weight edit. The raw value is parsed, with
// non-numeric input treated as 0 and the result clamped to [0,100]; the
// creative is pinned as custom and the collection redistributed.
func (s *CreativeService) SetWeight(req dto.WeightChangeRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid weight payload")
	}

	weight := parseWeight(req.Value)

	return s.repo.Update(func(li *models.LineItem) error {
		c := li.Creative(req.CreativeID)
		if c == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("creative %d not found", req.CreativeID))
		}
		c.Weighting = weight
		c.HasCustomWeight = true
		w := weight
		c.OriginalWeight = &w

		li.Creatives = Redistribute(li.Creatives)
		return nil
	})
}

// ResetWeights clears every pin and redistributes evenly.
func (s *CreativeService) ResetWeights() (*models.LineItem, error) {
	return s.repo.Update(func(li *models.LineItem) error {
		for i := range li.Creatives {
			li.Creatives[i].HasCustomWeight = false
			li.Creatives[i].OriginalWeight = nil
		}
		li.Creatives = Redistribute(li.Creatives)
		return nil
	})
}

// SetDefault moves the default flag to the given creative. Only active
// creatives are eligible.
func (s *CreativeService) SetDefault(creativeID int) (*models.LineItem, error) {
	return s.repo.Update(func(li *models.LineItem) error {
		c := li.Creative(creativeID)
		if c == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("creative %d not found", creativeID))
		}
		if !c.Status {
			return appErrors.Clone(appErrors.ErrValidation, "default creative must be active")
		}
		for i := range li.Creatives {
			li.Creatives[i].IsDefault = li.Creatives[i].ID == creativeID
		}
		return ensureSingleDefault(li)
	})
}

// DeleteCreative removes a creative. Deleting the default while other
// creatives remain requires a reassignment target first.
func (s *CreativeService) DeleteCreative(req dto.DeleteCreativeRequest) (*models.LineItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid delete payload")
	}

	return s.repo.Update(func(li *models.LineItem) error {
		c := li.Creative(req.CreativeID)
		if c == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("creative %d not found", req.CreativeID))
		}
		if c.IsDefault && len(li.Creatives) > 1 {
			if err := s.reassignDefault(li, c.ID, req.NewDefaultID); err != nil {
				return err
			}
		}

		kept := li.Creatives[:0]
		for _, existing := range li.Creatives {
			if existing.ID != req.CreativeID {
				kept = append(kept, existing)
			}
		}
		li.Creatives = kept

		li.Creatives = Redistribute(li.Creatives)
		return ensureSingleDefault(li)
	})
}

// reassignDefault moves the default flag off creativeID and onto the
// requested target, validating the target is a different, attached creative.
func (s *CreativeService) reassignDefault(li *models.LineItem, creativeID int, newDefaultID *int) error {
	if newDefaultID == nil {
		return appErrors.ErrDefaultReassignment
	}
	if *newDefaultID == creativeID {
		return appErrors.Clone(appErrors.ErrValidation, "new default must be a different creative")
	}
	target := li.Creative(*newDefaultID)
	if target == nil {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("creative %d not found", *newDefaultID))
	}
	for i := range li.Creatives {
		li.Creatives[i].IsDefault = li.Creatives[i].ID == *newDefaultID
	}
	s.logger.Info("default creative reassigned",
		zap.Int("from", creativeID),
		zap.Int("to", *newDefaultID),
	)
	return nil
}

// ensureSingleDefault enforces the at-most-one-default invariant after every
// collection mutation.
func ensureSingleDefault(li *models.LineItem) error {
	count := 0
	for i := range li.Creatives {
		if li.Creatives[i].IsDefault {
			count++
		}
	}
	if count > 1 {
		return appErrors.Clone(appErrors.ErrInternal, "line item has multiple default creatives")
	}
	return nil
}

// parseWeight turns raw input text into a weight in [0,100]. Non-numeric
// input counts as 0.
func parseWeight(value string) int {
	weight, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	if weight < 0 {
		return 0
	}
	if weight > 100 {
		return 100
	}
	return weight
}
