package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propfinder/listing-api/internal/models"
	"github.com/propfinder/listing-api/pkg/kv"
)

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, kv.ErrKeyNotFound
}

func (m *memKV) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestLoadSeedsEmptyStorage(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	props := NewPropertyCollection(backend, nil)

	records, err := props.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 11)
	assert.Equal(t, "1", records[0].ID)
	assert.NotEmpty(t, backend.data[PropertiesKey])
}

func TestLoadReseedIsIdempotent(t *testing.T) {
	ctx := context.Background()

	first := newMemKV()
	require.NoError(t, NewPropertyCollection(first, nil).Load(ctx))

	second := newMemKV()
	require.NoError(t, NewPropertyCollection(second, nil).Load(ctx))

	assert.Equal(t, first.data[PropertiesKey], second.data[PropertiesKey])
}

func TestLoadDiscardsUnparseablePayload(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	backend.data[HeroImagesKey] = []byte("{not json")

	heroes := NewHeroCollection(backend, nil)
	records, err := heroes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	var persisted []models.HeroImage
	require.NoError(t, json.Unmarshal(backend.data[HeroImagesKey], &persisted))
	assert.Len(t, persisted, 3)
}

type flakyKV struct {
	*memKV
	getErr error
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		err := f.getErr
		f.getErr = nil
		return nil, err
	}
	return f.memKV.Get(ctx, key)
}

func TestLoadSurfacesReadFailureWithoutReseeding(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()

	live, err := json.Marshal([]models.Property{{ID: "42", Title: "Live Listing", Status: models.StatusApproved}})
	require.NoError(t, err)
	backend.data[PropertiesKey] = live

	flaky := &flakyKV{memKV: backend, getErr: errors.New("connection refused")}
	props := NewPropertyCollection(flaky, nil)

	err = props.Load(ctx)
	require.Error(t, err)
	assert.Equal(t, live, backend.data[PropertiesKey], "read failure replaced the stored collection")

	// once the backend recovers the stored records load as-is
	records, err := props.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "42", records[0].ID)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	props := NewPropertyCollection(backend, nil)

	seen := map[string]bool{}
	records, err := props.List(ctx)
	require.NoError(t, err)
	for _, p := range records {
		seen[p.ID] = true
	}

	for i := 0; i < 5; i++ {
		created, err := props.Create(ctx, models.Property{Title: "New Listing", Status: models.StatusPending})
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "identifier %s reused", created.ID)
		seen[created.ID] = true
	}
}

func TestCreateDerivesNextIDAfterReload(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()

	props := NewPropertyCollection(backend, nil)
	created, err := props.Create(ctx, models.Property{Title: "Before Restart"})
	require.NoError(t, err)
	assert.Equal(t, "12", created.ID)

	// a fresh collection over the same storage simulates a process restart
	reloaded := NewPropertyCollection(backend, nil)
	next, err := reloaded.Create(ctx, models.Property{Title: "After Restart"})
	require.NoError(t, err)
	assert.Equal(t, "13", next.ID)
}

func TestCreateSurvivesDeletionWithoutReuse(t *testing.T) {
	ctx := context.Background()
	props := NewPropertyCollection(newMemKV(), nil)

	created, err := props.Create(ctx, models.Property{Title: "Short Lived"})
	require.NoError(t, err)

	found, err := props.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found)

	next, err := props.Create(ctx, models.Property{Title: "Replacement"})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, next.ID)
}

func TestUpdateMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	props := NewPropertyCollection(backend, nil)

	found, err := props.Update(ctx, "7", func(p models.Property) models.Property {
		p.Status = models.StatusApproved
		return p
	})
	require.NoError(t, err)
	assert.True(t, found)

	record, ok, err := props.Get(ctx, "7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.StatusApproved, record.Status)

	var persisted []models.Property
	require.NoError(t, json.Unmarshal(backend.data[PropertiesKey], &persisted))
	assert.Equal(t, models.StatusApproved, persisted[6].Status)
}

func TestUpdateUnknownIDLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	props := NewPropertyCollection(backend, nil)
	require.NoError(t, props.Load(ctx))

	before := append([]byte(nil), backend.data[PropertiesKey]...)

	found, err := props.Update(ctx, "nonexistent-id", func(p models.Property) models.Property {
		p.Status = models.StatusApproved
		return p
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, backend.data[PropertiesKey])
}

func TestUpdateCannotReassignIdentifier(t *testing.T) {
	ctx := context.Background()
	props := NewPropertyCollection(newMemKV(), nil)

	found, err := props.Update(ctx, "3", func(p models.Property) models.Property {
		p.ID = "999"
		p.Title = "Renamed"
		return p
	})
	require.NoError(t, err)
	assert.True(t, found)

	record, ok, err := props.Get(ctx, "3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Renamed", record.Title)
}

func TestListReturnsDefensiveCopies(t *testing.T) {
	ctx := context.Background()
	props := NewPropertyCollection(newMemKV(), nil)

	records, err := props.List(ctx)
	require.NoError(t, err)
	records[0].Title = "Mutated"
	records[0].Images[0] = "/mutated.png"

	fresh, err := props.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Luxury 3BHK Apartment in Bandra", fresh[0].Title)
	assert.Equal(t, "/luxury-apartment-interior.png", fresh[0].Images[0])
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, count := range []int{0, 1, 11} {
		seed := defaultProperties[:count]
		backend := newMemKV()
		data, err := json.Marshal(seed)
		require.NoError(t, err)
		backend.data[PropertiesKey] = data

		props := NewPropertyCollection(backend, nil)
		records, err := props.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, count)
		for i, record := range records {
			assert.Equal(t, seed[i], record)
		}
	}
}

func TestFileBackedReload(t *testing.T) {
	ctx := context.Background()
	backend, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)

	props := NewPropertyCollection(backend, nil)
	created, err := props.Create(ctx, models.Property{Title: "Persisted", Status: models.StatusPending})
	require.NoError(t, err)

	reloaded := NewPropertyCollection(backend, nil)
	record, ok, err := reloaded.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Persisted", record.Title)
}
