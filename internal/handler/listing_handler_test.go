package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propfinder/listing-api/internal/middleware"
	"github.com/propfinder/listing-api/internal/models"
	"github.com/propfinder/listing-api/internal/service"
)

type listingServiceMock struct {
	submitted       *models.SubmitPropertyRequest
	submittedBy     string
	transitionFound bool
	browseFilter    models.BrowseFilter
	records         []models.Property
}

func (m *listingServiceMock) Submit(ctx context.Context, managerID string, req models.SubmitPropertyRequest) (*models.Property, error) {
	m.submitted = &req
	m.submittedBy = managerID
	return &models.Property{ID: "12", Status: models.StatusPending, ManagerID: managerID}, nil
}

func (m *listingServiceMock) Approve(ctx context.Context, id string) (bool, error) {
	return m.transitionFound, nil
}

func (m *listingServiceMock) Reject(ctx context.Context, id string) (bool, error) {
	return m.transitionFound, nil
}

func (m *listingServiceMock) Approved(ctx context.Context) ([]models.Property, error) {
	return m.records, nil
}

func (m *listingServiceMock) Pending(ctx context.Context) ([]models.Property, error) {
	return m.records, nil
}

func (m *listingServiceMock) Rejected(ctx context.Context) ([]models.Property, error) {
	return m.records, nil
}

func (m *listingServiceMock) ByManager(ctx context.Context, managerID string) ([]models.Property, error) {
	return m.records, nil
}

func (m *listingServiceMock) ByID(ctx context.Context, id string) (*models.Property, error) {
	return &models.Property{ID: id, Status: models.StatusApproved}, nil
}

func (m *listingServiceMock) Browse(ctx context.Context, filter models.BrowseFilter) ([]models.Property, error) {
	m.browseFilter = filter
	return m.records, nil
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestApproveUnknownIDReturns404(t *testing.T) {
	mock := &listingServiceMock{transitionFound: false}
	h := NewListingHandler(mock, nil, nil)

	c, w := testContext(t, http.MethodPost, "/admin/properties/404/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: "404"}}

	h.Approve(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApproveKnownIDReturnsListing(t *testing.T) {
	mock := &listingServiceMock{transitionFound: true}
	h := NewListingHandler(mock, nil, nil)

	c, w := testContext(t, http.MethodPost, "/admin/properties/7/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Approve(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"7"`)
}

func TestSubmitUsesCallerAsOwner(t *testing.T) {
	mock := &listingServiceMock{}
	h := NewListingHandler(mock, nil, nil)

	body, err := json.Marshal(models.SubmitPropertyRequest{
		Title:       "Harbor View 2BHK",
		Location:    "Mumbai, Worli",
		Price:       52000,
		BHK:         "2BHK",
		Area:        1150,
		Description: "Sea-facing apartment.",
		Images:      []string{"/harbor-view.png"},
	})
	require.NoError(t, err)

	c, w := testContext(t, http.MethodPost, "/manager/properties", body)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "manager@test.com", Role: models.RoleManager})

	h.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "manager@test.com", mock.submittedBy)
}

func TestSubmitWithoutClaimsIsUnauthorized(t *testing.T) {
	h := NewListingHandler(&listingServiceMock{}, nil, nil)

	c, w := testContext(t, http.MethodPost, "/manager/properties", []byte(`{"title":"x","location":"y","price":1,"bhk":"1BHK","area":1,"description":"d","images":["/a.png"]}`))
	h.Submit(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	h := NewListingHandler(&listingServiceMock{}, nil, nil)
	c, w := testContext(t, http.MethodPost, "/manager/properties", []byte(`{invalid`))
	h.Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBrowsePassesQueryFilters(t *testing.T) {
	mock := &listingServiceMock{}
	h := NewListingHandler(mock, nil, nil)

	c, w := testContext(t, http.MethodGet, "/properties?location=mumbai&price=20000-50000", nil)
	h.Browse(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mumbai", mock.browseFilter.Location)
	assert.Equal(t, models.Band20KTo50K, mock.browseFilter.Band)
}

func TestBrowseDefaultsToAllBand(t *testing.T) {
	mock := &listingServiceMock{}
	h := NewListingHandler(mock, nil, nil)

	c, w := testContext(t, http.MethodGet, "/properties", nil)
	h.Browse(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.BandAll, mock.browseFilter.Band)
}

func TestReviewRejectsUnknownStatusFilter(t *testing.T) {
	h := NewListingHandler(&listingServiceMock{}, nil, nil)
	c, w := testContext(t, http.MethodGet, "/admin/properties?status=archived", nil)
	h.Review(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportDisabledWithoutGenerator(t *testing.T) {
	h := NewListingHandler(&listingServiceMock{}, nil, nil)
	c, w := testContext(t, http.MethodGet, "/admin/properties/export", nil)
	h.Export(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type exportGeneratorMock struct {
	archived  string
	discarded string
}

func (m *exportGeneratorMock) Generate(ctx context.Context, format string) (*service.ExportResult, error) {
	return &service.ExportResult{Filename: "listings.csv", ContentType: "text/csv", Payload: []byte("ID\n")}, nil
}

func (m *exportGeneratorMock) Archived(ctx context.Context, filename string) (*service.ExportResult, error) {
	m.archived = filename
	return &service.ExportResult{Filename: filename, ContentType: "text/csv", Payload: []byte("ID\n1\n")}, nil
}

func (m *exportGeneratorMock) Discard(ctx context.Context, filename string) error {
	m.discarded = filename
	return nil
}

func TestDownloadExportStreamsArchivedReport(t *testing.T) {
	mock := &exportGeneratorMock{}
	h := NewListingHandler(&listingServiceMock{}, mock, nil)

	c, w := testContext(t, http.MethodGet, "/admin/exports/listings.csv", nil)
	c.Params = gin.Params{{Key: "filename", Value: "listings.csv"}}

	h.DownloadExport(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "listings.csv", mock.archived)
	assert.Equal(t, "attachment; filename=listings.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\n1\n", w.Body.String())
}

func TestDeleteExportDiscardsArchivedReport(t *testing.T) {
	mock := &exportGeneratorMock{}
	h := NewListingHandler(&listingServiceMock{}, mock, nil)

	c, w := testContext(t, http.MethodDelete, "/admin/exports/listings.csv", nil)
	c.Params = gin.Params{{Key: "filename", Value: "listings.csv"}}

	h.DeleteExport(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "listings.csv", mock.discarded)
}
