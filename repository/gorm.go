package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"home-service-server/models"
)

// GormServiceRequestStore persists service requests in Postgres via gorm.
// It satisfies ServiceRequestRepository so the lifecycle service is unaware
// of which store backs it.
type GormServiceRequestStore struct {
	db *gorm.DB
}

// NewGormServiceRequestStore creates a request store on top of a gorm connection
func NewGormServiceRequestStore(db *gorm.DB) *GormServiceRequestStore {
	return &GormServiceRequestStore{db: db}
}

func (s *GormServiceRequestStore) preloaded() *gorm.DB {
	return s.db.
		Preload("Invoice.Items").
		Preload("Media").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		})
}

// Get returns the request with the given id
func (s *GormServiceRequestStore) Get(id string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	if err := s.preloaded().First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load service request: %w", err)
	}
	return &req, nil
}

// List returns all requests, newest first
func (s *GormServiceRequestStore) List() ([]*models.ServiceRequest, error) {
	return s.find("")
}

// ListByUser returns the requests created by the given user, newest first
func (s *GormServiceRequestStore) ListByUser(userID string) ([]*models.ServiceRequest, error) {
	return s.find("user_id = ?", userID)
}

// ListByTechnician returns the requests assigned to the given technician, newest first
func (s *GormServiceRequestStore) ListByTechnician(technicianID string) ([]*models.ServiceRequest, error) {
	return s.find("assigned_technician_id = ?", technicianID)
}

// ListByStatus returns the requests currently in the given status, newest first
func (s *GormServiceRequestStore) ListByStatus(status models.RequestStatus) ([]*models.ServiceRequest, error) {
	return s.find("status = ?", status)
}

func (s *GormServiceRequestStore) find(query string, args ...interface{}) ([]*models.ServiceRequest, error) {
	var requests []*models.ServiceRequest
	tx := s.preloaded().Order("requested_at DESC")
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	return requests, nil
}

// Upsert writes the request and its owned records (invoice, items, media,
// messages) in one save.
func (s *GormServiceRequestStore) Upsert(req *models.ServiceRequest) error {
	if err := s.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(req).Error; err != nil {
		return fmt.Errorf("failed to save service request: %w", err)
	}
	return nil
}

// GormUserStore persists user accounts in Postgres via gorm
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore creates a user store on top of a gorm connection
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// Get returns the user with the given id
func (s *GormUserStore) Get(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// GetByEmail returns the user with the given email, ignoring case
func (s *GormUserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "LOWER(email) = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}
	return &user, nil
}

// List returns all users
func (s *GormUserStore) List() ([]*models.User, error) {
	var users []*models.User
	if err := s.db.Order("registered_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Upsert inserts or replaces a user account
func (s *GormUserStore) Upsert(user *models.User) error {
	if err := s.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GormTechnicianStore persists the technician directory in Postgres via gorm
type GormTechnicianStore struct {
	db *gorm.DB
}

// NewGormTechnicianStore creates a technician store on top of a gorm connection
func NewGormTechnicianStore(db *gorm.DB) *GormTechnicianStore {
	return &GormTechnicianStore{db: db}
}

// Get returns the technician profile with the given id
func (s *GormTechnicianStore) Get(id string) (*models.TechnicianProfile, error) {
	var profile models.TechnicianProfile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load technician profile: %w", err)
	}
	return &profile, nil
}

// List returns all technician profiles
func (s *GormTechnicianStore) List() ([]*models.TechnicianProfile, error) {
	var profiles []*models.TechnicianProfile
	if err := s.db.Order("full_name ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list technician profiles: %w", err)
	}
	return profiles, nil
}

// Upsert inserts or replaces a technician profile
func (s *GormTechnicianStore) Upsert(profile *models.TechnicianProfile) error {
	if err := s.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save technician profile: %w", err)
	}
	return nil
}
