package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-service-server/models"
)

func sampleRequest(id, userID string) *models.ServiceRequest {
	cost := 150.0
	return &models.ServiceRequest{
		ID:          id,
		UserID:      userID,
		Title:       "Leaky faucet",
		Category:    "Plumbing",
		Status:      models.StatusPending,
		RequestedAt: time.Now(),
		Cost:        &cost,
	}
}

func TestMemoryServiceRequestStore(t *testing.T) {
	t.Run("get returns a copy", func(t *testing.T) {
		store := NewMemoryServiceRequestStore()
		require.NoError(t, store.Upsert(sampleRequest("req-1", "user-1")))

		got, err := store.Get("req-1")
		require.NoError(t, err)
		got.Status = models.StatusCancelled
		got.Messages = append(got.Messages, models.Message{ID: "m1", Text: "hi"})

		again, err := store.Get("req-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, again.Status)
		assert.Empty(t, again.Messages)
	})

	t.Run("missing id", func(t *testing.T) {
		store := NewMemoryServiceRequestStore()
		_, err := store.Get("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upsert replaces in place without reordering", func(t *testing.T) {
		store := NewMemoryServiceRequestStore()
		require.NoError(t, store.Upsert(sampleRequest("req-1", "user-1")))
		require.NoError(t, store.Upsert(sampleRequest("req-2", "user-1")))

		first, err := store.Get("req-1")
		require.NoError(t, err)
		first.Status = models.StatusAccepted
		require.NoError(t, store.Upsert(first))

		all, err := store.List()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "req-2", all[0].ID)
		assert.Equal(t, "req-1", all[1].ID)
		assert.Equal(t, models.StatusAccepted, all[1].Status)
	})

	t.Run("listings filter by user, technician and status", func(t *testing.T) {
		store := NewMemoryServiceRequestStore()
		techID := "tech-1"
		assigned := sampleRequest("req-1", "user-1")
		assigned.Status = models.StatusAccepted
		assigned.AssignedTechnicianID = &techID
		require.NoError(t, store.Upsert(assigned))
		require.NoError(t, store.Upsert(sampleRequest("req-2", "user-2")))

		mine, err := store.ListByUser("user-1")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "req-1", mine[0].ID)

		jobs, err := store.ListByTechnician("tech-1")
		require.NoError(t, err)
		require.Len(t, jobs, 1)

		pending, err := store.ListByStatus(models.StatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "req-2", pending[0].ID)
	})

	t.Run("stored requests are isolated from caller mutation", func(t *testing.T) {
		store := NewMemoryServiceRequestStore()
		req := sampleRequest("req-1", "user-1")
		require.NoError(t, store.Upsert(req))
		req.Title = "changed after upsert"

		got, err := store.Get("req-1")
		require.NoError(t, err)
		assert.Equal(t, "Leaky faucet", got.Title)
	})
}

func TestMemoryUserStore(t *testing.T) {
	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		store := NewMemoryUserStore()
		require.NoError(t, store.Upsert(&models.User{
			ID: "u1", Email: "sarah@example.com", FullName: "Sarah", IsActive: true,
		}))

		got, err := store.GetByEmail("SARAH@Example.Com")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)

		_, err = store.GetByEmail("other@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("email index follows updates", func(t *testing.T) {
		store := NewMemoryUserStore()
		require.NoError(t, store.Upsert(&models.User{ID: "u1", Email: "old@example.com"}))
		require.NoError(t, store.Upsert(&models.User{ID: "u1", Email: "new@example.com"}))

		_, err := store.GetByEmail("old@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
		got, err := store.GetByEmail("new@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
	})
}

func TestMemoryTechnicianStore(t *testing.T) {
	store := NewMemoryTechnicianStore()
	require.NoError(t, store.Upsert(&models.TechnicianProfile{ID: "t1", FullName: "John", Specialty: "Plumbing"}))

	got, err := store.Get("t1")
	require.NoError(t, err)
	got.Specialty = "HVAC"

	again, err := store.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", again.Specialty)

	all, err := store.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
