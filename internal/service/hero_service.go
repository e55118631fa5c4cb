package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/propfinder/listing-api/internal/models"
	appErrors "github.com/propfinder/listing-api/pkg/errors"
)

type heroStore interface {
	List(ctx context.Context) ([]models.HeroImage, error)
	Get(ctx context.Context, id string) (models.HeroImage, bool, error)
	Create(ctx context.Context, record models.HeroImage) (models.HeroImage, error)
	Update(ctx context.Context, id string, merge func(models.HeroImage) models.HeroImage) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// HeroService curates the homepage hero carousel. Admins hold full CRUD;
// managers may add images and remove the ones they uploaded.
type HeroService struct {
	store     heroStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHeroService constructs a HeroService.
func NewHeroService(store heroStore, validate *validator.Validate, logger *zap.Logger) *HeroService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeroService{store: store, validator: validate, logger: logger}
}

// List returns every hero image in insertion order, which is also the
// carousel rotation order.
func (s *HeroService) List(ctx context.Context) ([]models.HeroImage, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list hero images")
	}
	return records, nil
}

// Create adds a hero image attributed to the uploader.
func (s *HeroService) Create(ctx context.Context, uploadedBy string, req models.CreateHeroImageRequest) (*models.HeroImage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hero image payload")
	}

	created, err := s.store.Create(ctx, models.HeroImage{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create hero image")
	}

	s.logger.Info("hero image added", zap.String("id", created.ID), zap.String("uploader", uploadedBy))
	return &created, nil
}

// Update merges the provided fields into an existing hero image. Unknown
// identifiers are reported as found=false.
func (s *HeroService) Update(ctx context.Context, id string, req models.UpdateHeroImageRequest) (bool, error) {
	found, err := s.store.Update(ctx, id, func(h models.HeroImage) models.HeroImage {
		if req.URL != nil {
			h.URL = *req.URL
		}
		if req.Title != nil {
			h.Title = *req.Title
		}
		if req.Description != nil {
			h.Description = *req.Description
		}
		return h
	})
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update hero image")
	}
	return found, nil
}

// Delete removes a hero image on behalf of the given actor. Admins may
// remove any image; managers only the ones they uploaded.
func (s *HeroService) Delete(ctx context.Context, actor models.Session, id string) (bool, error) {
	if actor.Role != models.RoleAdmin {
		record, found, err := s.store.Get(ctx, id)
		if err != nil {
			return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch hero image")
		}
		if !found {
			return false, nil
		}
		if record.UploadedBy != actor.Email {
			return false, appErrors.Clone(appErrors.ErrForbidden, "hero image belongs to another uploader")
		}
	}

	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete hero image")
	}
	if found {
		s.logger.Info("hero image removed", zap.String("id", id), zap.String("actor", actor.Email))
	}
	return found, nil
}
