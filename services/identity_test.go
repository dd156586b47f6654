package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-service-server/models"
	"home-service-server/repository"
)

func newIdentityFixture(t *testing.T) (*Identity, repository.UserRepository, repository.TechnicianRepository) {
	t.Helper()
	users := repository.NewMemoryUserStore()
	technicians := repository.NewMemoryTechnicianStore()
	return NewIdentity(users, technicians), users, technicians
}

func TestSignup(t *testing.T) {
	t.Run("customer gets an account and an avatar", func(t *testing.T) {
		identity, _, _ := newIdentityFixture(t)

		user, err := identity.Signup(SignupInput{
			FullName: "Sarah Connor",
			Email:    "Sarah@Example.com",
			Role:     models.RoleCustomer,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "sarah@example.com", user.Email)
		assert.Equal(t, models.RoleCustomer, user.Role)
		assert.Contains(t, user.AvatarURL, "i.pravatar.cc")
		assert.True(t, user.IsActive)
	})

	t.Run("technician gets a directory entry with a seeded rating", func(t *testing.T) {
		identity, _, technicians := newIdentityFixture(t)

		user, err := identity.Signup(SignupInput{
			FullName:  "John Wick",
			Email:     "john@example.com",
			Role:      models.RoleTechnician,
			Specialty: "Plumbing",
		})
		require.NoError(t, err)

		profile, err := technicians.Get(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "John Wick", profile.FullName)
		assert.Equal(t, "Plumbing", profile.Specialty)
		assert.Equal(t, models.TechnicianAvailable, profile.Status)
		assert.GreaterOrEqual(t, profile.Rating, 4.0)
		assert.LessOrEqual(t, profile.Rating, 5.0)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		identity, _, _ := newIdentityFixture(t)

		_, err := identity.Signup(SignupInput{FullName: "A", Email: "dup@example.com", Role: models.RoleCustomer})
		require.NoError(t, err)
		_, err = identity.Signup(SignupInput{FullName: "B", Email: "DUP@example.com", Role: models.RoleCustomer})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("technician without specialty is rejected", func(t *testing.T) {
		identity, _, _ := newIdentityFixture(t)
		_, err := identity.Signup(SignupInput{FullName: "John", Email: "j@example.com", Role: models.RoleTechnician})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("admin accounts cannot self-register", func(t *testing.T) {
		identity, _, _ := newIdentityFixture(t)
		_, err := identity.Signup(SignupInput{FullName: "Boss", Email: "boss@example.com", Role: models.RoleAdmin})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestLogin(t *testing.T) {
	t.Run("finds active users case-insensitively", func(t *testing.T) {
		identity, _, _ := newIdentityFixture(t)
		created, err := identity.Signup(SignupInput{FullName: "Sarah", Email: "sarah@example.com", Role: models.RoleCustomer})
		require.NoError(t, err)

		user, err := identity.Login("  SARAH@example.COM ")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		identity, _, _ := newIdentityFixture(t)
		_, err := identity.Login("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		identity, users, _ := newIdentityFixture(t)
		require.NoError(t, users.Upsert(&models.User{
			ID: "u1", Email: "gone@example.com", Role: models.RoleCustomer, IsActive: false,
		}))
		_, err := identity.Login("gone@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	strptr := func(s string) *string { return &s }

	t.Run("patches only supplied fields", func(t *testing.T) {
		identity, _, _ := newIdentityFixture(t)
		created, err := identity.Signup(SignupInput{FullName: "Sarah", Email: "sarah@example.com", Role: models.RoleCustomer})
		require.NoError(t, err)

		updated, err := identity.UpdateProfile(created.ID, models.UserProfileUpdate{
			Address: strptr("456 Oak Ave"),
		})
		require.NoError(t, err)
		assert.Equal(t, "456 Oak Ave", updated.Address)
		assert.Equal(t, "Sarah", updated.FullName)
	})

	t.Run("name change propagates to the directory", func(t *testing.T) {
		identity, _, technicians := newIdentityFixture(t)
		created, err := identity.Signup(SignupInput{
			FullName: "John", Email: "john@example.com",
			Role: models.RoleTechnician, Specialty: "HVAC",
		})
		require.NoError(t, err)

		_, err = identity.UpdateProfile(created.ID, models.UserProfileUpdate{FullName: strptr("Johnathan")})
		require.NoError(t, err)

		profile, err := technicians.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Johnathan", profile.FullName)
	})
}

func TestBackfillContact(t *testing.T) {
	t.Run("fills empty fields and never overwrites", func(t *testing.T) {
		identity, users, _ := newIdentityFixture(t)
		require.NoError(t, users.Upsert(&models.User{
			ID: "u1", Email: "a@example.com", Role: models.RoleCustomer,
			IsActive: true, Address: "1 First St",
		}))

		require.NoError(t, identity.BackfillContact("u1", "2 Second St", "555-0102"))

		user, err := users.Get("u1")
		require.NoError(t, err)
		assert.Equal(t, "1 First St", user.Address)
		assert.Equal(t, "555-0102", user.ContactPhone)
	})
}

func TestPricingEstimators(t *testing.T) {
	t.Run("flat rate falls back to the default", func(t *testing.T) {
		e := NewFlatRateEstimator()
		assert.Equal(t, 150.0, e.Estimate("Plumbing"))
		assert.Equal(t, e.Default, e.Estimate("Other"))
	})

	t.Run("random estimates stay in range", func(t *testing.T) {
		e := NewRandomEstimator()
		for i := 0; i < 100; i++ {
			cost := e.Estimate("Plumbing")
			assert.GreaterOrEqual(t, cost, 50.0)
			assert.LessOrEqual(t, cost, 500.0)
		}
	})
}
