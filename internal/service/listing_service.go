package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/propfinder/listing-api/internal/models"
	appErrors "github.com/propfinder/listing-api/pkg/errors"
)

type propertyStore interface {
	List(ctx context.Context) ([]models.Property, error)
	Get(ctx context.Context, id string) (models.Property, bool, error)
	Create(ctx context.Context, record models.Property) (models.Property, error)
	Update(ctx context.Context, id string, merge func(models.Property) models.Property) (bool, error)
}

// ListingService implements the property review workflow: submission,
// admin status transitions and role-scoped queries over the property store.
type ListingService struct {
	store     propertyStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewListingService constructs a ListingService.
func NewListingService(store propertyStore, validate *validator.Validate, logger *zap.Logger) *ListingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{store: store, validator: validate, logger: logger}
}

// Submit creates a new listing owned by the given manager. The status is
// forced to pending regardless of any value the caller supplied.
func (s *ListingService) Submit(ctx context.Context, managerID string, req models.SubmitPropertyRequest) (*models.Property, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid listing payload")
	}

	created, err := s.store.Create(ctx, models.Property{
		Title:       req.Title,
		Location:    req.Location,
		Price:       req.Price,
		BHK:         req.BHK,
		Area:        req.Area,
		Description: req.Description,
		Images:      req.Images,
		Status:      models.StatusPending,
		ManagerID:   managerID,
		Amenities:   req.Amenities,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create listing")
	}

	s.logger.Info("listing submitted",
		zap.String("id", created.ID), zap.String("manager", managerID))
	return &created, nil
}

// Approve moves the listing to approved. The transition is an unconditional
// overwrite; the current status is not consulted. Unknown identifiers are a
// no-op reported as found=false, never an error.
func (s *ListingService) Approve(ctx context.Context, id string) (bool, error) {
	return s.setStatus(ctx, id, models.StatusApproved)
}

// Reject moves the listing to rejected, with the same unconditional
// semantics as Approve.
func (s *ListingService) Reject(ctx context.Context, id string) (bool, error) {
	return s.setStatus(ctx, id, models.StatusRejected)
}

func (s *ListingService) setStatus(ctx context.Context, id string, status models.PropertyStatus) (bool, error) {
	found, err := s.store.Update(ctx, id, func(p models.Property) models.Property {
		p.Status = status
		return p
	})
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update listing status")
	}
	if found {
		s.logger.Info("listing status changed", zap.String("id", id), zap.String("status", string(status)))
	}
	return found, nil
}

// Approved returns approved listings in stable insertion order.
func (s *ListingService) Approved(ctx context.Context) ([]models.Property, error) {
	return s.byStatus(ctx, models.StatusApproved)
}

// Pending returns listings awaiting review.
func (s *ListingService) Pending(ctx context.Context) ([]models.Property, error) {
	return s.byStatus(ctx, models.StatusPending)
}

// Rejected returns rejected listings.
func (s *ListingService) Rejected(ctx context.Context) ([]models.Property, error) {
	return s.byStatus(ctx, models.StatusRejected)
}

func (s *ListingService) byStatus(ctx context.Context, status models.PropertyStatus) ([]models.Property, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list properties")
	}
	return lo.Filter(records, func(p models.Property, _ int) bool {
		return p.Status == status
	}), nil
}

// ByManager returns all listings owned by the given manager, any status.
func (s *ListingService) ByManager(ctx context.Context, managerID string) ([]models.Property, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list properties")
	}
	return lo.Filter(records, func(p models.Property, _ int) bool {
		return p.ManagerID == managerID
	}), nil
}

// ByID looks up a single listing.
func (s *ListingService) ByID(ctx context.Context, id string) (*models.Property, error) {
	record, found, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch listing")
	}
	if !found {
		return nil, appErrors.ErrNotFound
	}
	return &record, nil
}

// Browse returns the approved subset narrowed by the two independent browse
// predicates: a case-insensitive location substring and a price band. An
// empty location or the "all" band disables the corresponding predicate.
func (s *ListingService) Browse(ctx context.Context, filter models.BrowseFilter) ([]models.Property, error) {
	approved, err := s.Approved(ctx)
	if err != nil {
		return nil, err
	}

	location := strings.ToLower(filter.Location)
	return lo.Filter(approved, func(p models.Property, _ int) bool {
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			return false
		}
		return filter.Band.Matches(p.Price)
	}), nil
}
