package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"home-service-server/models"
	"home-service-server/repository"
)

// Identity owns user accounts and the technician directory. The login here is
// a plain lookup with no credential check; real authentication is explicitly
// out of scope.
type Identity struct {
	users       repository.UserRepository
	technicians repository.TechnicianRepository
}

// NewIdentity creates the identity service
func NewIdentity(users repository.UserRepository, technicians repository.TechnicianRepository) *Identity {
	return &Identity{users: users, technicians: technicians}
}

// SignupInput carries the fields collected by the signup form
type SignupInput struct {
	FullName  string          `json:"name" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	Role      models.UserRole `json:"role" binding:"required"`
	Specialty string          `json:"specialty"`
}

// Login finds an active user by email. No password is verified.
func (s *Identity) Login(email string) (*models.User, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrNotFound
	}
	return user, nil
}

// GetUser returns a user by id
func (s *Identity) GetUser(id string) (*models.User, error) {
	user, err := s.users.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all registered users
func (s *Identity) ListUsers() ([]*models.User, error) {
	return s.users.List()
}

// ListTechnicians returns the technician directory
func (s *Identity) ListTechnicians() ([]*models.TechnicianProfile, error) {
	return s.technicians.List()
}

// GetTechnician returns one technician directory entry
func (s *Identity) GetTechnician(id string) (*models.TechnicianProfile, error) {
	profile, err := s.technicians.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Signup registers a new account. Technicians additionally get a directory
// entry whose id matches the user id.
func (s *Identity) Signup(in SignupInput) (*models.User, error) {
	if in.Role != models.RoleCustomer && in.Role != models.RoleTechnician {
		return nil, fmt.Errorf("%w: role must be customer or technician", ErrInvalidArgument)
	}
	if _, err := s.users.GetByEmail(in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if in.Role == models.RoleTechnician && strings.TrimSpace(in.Specialty) == "" {
		return nil, fmt.Errorf("%w: technician specialty is required", ErrInvalidArgument)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         in.Role,
		AvatarURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", uuid.NewString()),
		RegisteredAt: time.Now(),
		IsActive:     true,
	}
	if err := s.users.Upsert(user); err != nil {
		return nil, err
	}

	if in.Role == models.RoleTechnician {
		profile := &models.TechnicianProfile{
			ID:        user.ID,
			FullName:  user.FullName,
			Specialty: strings.TrimSpace(in.Specialty),
			// New technicians start with a seeded rating until real ratings arrive
			Rating:    math.Round((4+rand.Float64())*10) / 10,
			Status:    models.TechnicianAvailable,
			AvatarURL: user.AvatarURL,
		}
		if err := s.technicians.Upsert(profile); err != nil {
			return nil, err
		}
	}

	log.Printf("✅ New %s account registered: %s", user.Role, user.Email)
	return user, nil
}

// UpdateProfile patches a user's profile fields. Name and avatar changes are
// propagated to the technician directory entry when one exists.
func (s *Identity) UpdateProfile(userID string, patch models.UserProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) != "" {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.ContactPhone != nil {
		user.ContactPhone = *patch.ContactPhone
	}
	if err := s.users.Upsert(user); err != nil {
		return nil, err
	}

	if profile, err := s.technicians.Get(userID); err == nil {
		profile.FullName = user.FullName
		profile.AvatarURL = user.AvatarURL
		if err := s.technicians.Upsert(profile); err != nil {
			log.Printf("⚠️ Failed to sync technician directory for user %s: %v", userID, err)
		}
	}

	return user, nil
}

// BackfillContact fills in a user's address and phone from a submitted
// request when the profile lacks them. Existing values are never overwritten.
func (s *Identity) BackfillContact(userID, address, contactPhone string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if user.Address != "" && user.ContactPhone != "" {
		return nil
	}

	changed := false
	if user.Address == "" && address != "" {
		user.Address = address
		changed = true
	}
	if user.ContactPhone == "" && contactPhone != "" {
		user.ContactPhone = contactPhone
		changed = true
	}
	if !changed {
		return nil
	}
	return s.users.Upsert(user)
}
