package repository

import (
	"errors"

	"home-service-server/models"
)

// ErrNotFound is returned when a record does not exist in the store
var ErrNotFound = errors.New("record not found")

// ServiceRequestRepository is the authoritative store for service requests.
// All listings are returned newest-first.
type ServiceRequestRepository interface {
	Get(id string) (*models.ServiceRequest, error)
	List() ([]*models.ServiceRequest, error)
	ListByUser(userID string) ([]*models.ServiceRequest, error)
	ListByTechnician(technicianID string) ([]*models.ServiceRequest, error)
	ListByStatus(status models.RequestStatus) ([]*models.ServiceRequest, error)
	Upsert(req *models.ServiceRequest) error
}

// UserRepository stores user accounts. Email lookups are case-insensitive.
type UserRepository interface {
	Get(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]*models.User, error)
	Upsert(user *models.User) error
}

// TechnicianRepository stores the technician directory
type TechnicianRepository interface {
	Get(id string) (*models.TechnicianProfile, error)
	List() ([]*models.TechnicianProfile, error)
	Upsert(profile *models.TechnicianProfile) error
}
