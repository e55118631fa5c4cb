package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propfinder/listing-api/internal/models"
	appErrors "github.com/propfinder/listing-api/pkg/errors"
)

type heroStoreStub struct {
	records []models.HeroImage
	nextID  int
}

func (s *heroStoreStub) List(ctx context.Context) ([]models.HeroImage, error) {
	return append([]models.HeroImage(nil), s.records...), nil
}

func (s *heroStoreStub) Get(ctx context.Context, id string) (models.HeroImage, bool, error) {
	for _, h := range s.records {
		if h.ID == id {
			return h, true, nil
		}
	}
	return models.HeroImage{}, false, nil
}

func (s *heroStoreStub) Create(ctx context.Context, record models.HeroImage) (models.HeroImage, error) {
	s.nextID++
	record.ID = strconv.Itoa(s.nextID)
	s.records = append(s.records, record)
	return record, nil
}

func (s *heroStoreStub) Update(ctx context.Context, id string, merge func(models.HeroImage) models.HeroImage) (bool, error) {
	for i, h := range s.records {
		if h.ID == id {
			s.records[i] = merge(h)
			return true, nil
		}
	}
	return false, nil
}

func (s *heroStoreStub) Delete(ctx context.Context, id string) (bool, error) {
	for i, h := range s.records {
		if h.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestHeroCreateAttributesUploader(t *testing.T) {
	store := &heroStoreStub{}
	svc := NewHeroService(store, nil, nil)

	created, err := svc.Create(context.Background(), "manager@test.com", models.CreateHeroImageRequest{
		URL:         "/skyline.png",
		Title:       "City Skyline",
		Description: "Evening skyline over the harbor.",
	})
	require.NoError(t, err)
	assert.Equal(t, "manager@test.com", created.UploadedBy)
	assert.NotEmpty(t, created.ID)
}

func TestHeroCreateValidatesPayload(t *testing.T) {
	svc := NewHeroService(&heroStoreStub{}, nil, nil)
	_, err := svc.Create(context.Background(), "admin@test.com", models.CreateHeroImageRequest{URL: "/only-url.png"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestHeroUpdateMergesPartialFields(t *testing.T) {
	store := &heroStoreStub{records: []models.HeroImage{
		{ID: "1", URL: "/a.png", Title: "Old Title", Description: "Old description."},
	}}
	svc := NewHeroService(store, nil, nil)

	title := "New Title"
	found, err := svc.Update(context.Background(), "1", models.UpdateHeroImageRequest{Title: &title})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "New Title", store.records[0].Title)
	assert.Equal(t, "/a.png", store.records[0].URL)
	assert.Equal(t, "Old description.", store.records[0].Description)
}

func TestHeroUpdateUnknownID(t *testing.T) {
	svc := NewHeroService(&heroStoreStub{}, nil, nil)
	found, err := svc.Update(context.Background(), "404", models.UpdateHeroImageRequest{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHeroDeleteAdminRemovesAny(t *testing.T) {
	store := &heroStoreStub{records: []models.HeroImage{
		{ID: "1", UploadedBy: "manager@test.com"},
	}}
	svc := NewHeroService(store, nil, nil)

	found, err := svc.Delete(context.Background(), models.Session{Email: "admin@test.com", Role: models.RoleAdmin}, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, store.records)
}

func TestHeroDeleteManagerScopedToOwnUploads(t *testing.T) {
	store := &heroStoreStub{records: []models.HeroImage{
		{ID: "1", UploadedBy: "system"},
		{ID: "2", UploadedBy: "manager@test.com"},
	}}
	svc := NewHeroService(store, nil, nil)
	manager := models.Session{Email: "manager@test.com", Role: models.RoleManager}
	ctx := context.Background()

	_, err := svc.Delete(ctx, manager, "1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Len(t, store.records, 2)

	found, err := svc.Delete(ctx, manager, "2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, store.records, 1)
}

func TestHeroDeleteUnknownID(t *testing.T) {
	svc := NewHeroService(&heroStoreStub{}, nil, nil)
	found, err := svc.Delete(context.Background(), models.Session{Email: "admin@test.com", Role: models.RoleAdmin}, "404")
	require.NoError(t, err)
	assert.False(t, found)
}
