package repository

import (
	"strings"
	"sync"

	"home-service-server/models"
)

// MemoryServiceRequestStore keeps service requests in an owned map keyed by
// id, with newest-first iteration order. It is the default store when no
// database is configured.
type MemoryServiceRequestStore struct {
	mu       sync.RWMutex
	requests map[string]*models.ServiceRequest
	order    []string // ids, newest first
}

// NewMemoryServiceRequestStore creates an empty in-memory request store
func NewMemoryServiceRequestStore() *MemoryServiceRequestStore {
	return &MemoryServiceRequestStore{
		requests: make(map[string]*models.ServiceRequest),
	}
}

func cloneRequest(r *models.ServiceRequest) *models.ServiceRequest {
	c := *r
	if r.RequestedTimeslot != nil {
		ts := *r.RequestedTimeslot
		c.RequestedTimeslot = &ts
	}
	if r.AssignedTechnicianID != nil {
		id := *r.AssignedTechnicianID
		c.AssignedTechnicianID = &id
	}
	if r.Cost != nil {
		cost := *r.Cost
		c.Cost = &cost
	}
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		c.CompletedAt = &at
	}
	if r.Invoice != nil {
		inv := *r.Invoice
		inv.Items = append([]models.InvoiceItem(nil), r.Invoice.Items...)
		if r.Invoice.PaidAt != nil {
			paid := *r.Invoice.PaidAt
			inv.PaidAt = &paid
		}
		c.Invoice = &inv
	}
	if r.UserRating != nil {
		rating := *r.UserRating
		c.UserRating = &rating
	}
	if r.TechnicianRating != nil {
		rating := *r.TechnicianRating
		c.TechnicianRating = &rating
	}
	c.Media = append([]models.MediaAttachment(nil), r.Media...)
	c.Messages = append([]models.Message(nil), r.Messages...)
	return &c
}

// Get returns a copy of the request with the given id
func (s *MemoryServiceRequestStore) Get(id string) (*models.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRequest(req), nil
}

// List returns all requests, newest first
func (s *MemoryServiceRequestStore) List() ([]*models.ServiceRequest, error) {
	return s.listWhere(func(*models.ServiceRequest) bool { return true })
}

// ListByUser returns the requests created by the given user, newest first
func (s *MemoryServiceRequestStore) ListByUser(userID string) ([]*models.ServiceRequest, error) {
	return s.listWhere(func(r *models.ServiceRequest) bool { return r.UserID == userID })
}

// ListByTechnician returns the requests assigned to the given technician, newest first
func (s *MemoryServiceRequestStore) ListByTechnician(technicianID string) ([]*models.ServiceRequest, error) {
	return s.listWhere(func(r *models.ServiceRequest) bool {
		return r.AssignedTechnicianID != nil && *r.AssignedTechnicianID == technicianID
	})
}

// ListByStatus returns the requests currently in the given status, newest first
func (s *MemoryServiceRequestStore) ListByStatus(status models.RequestStatus) ([]*models.ServiceRequest, error) {
	return s.listWhere(func(r *models.ServiceRequest) bool { return r.Status == status })
}

func (s *MemoryServiceRequestStore) listWhere(match func(*models.ServiceRequest) bool) ([]*models.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.ServiceRequest, 0)
	for _, id := range s.order {
		if req := s.requests[id]; match(req) {
			result = append(result, cloneRequest(req))
		}
	}
	return result, nil
}

// Upsert inserts the request or replaces it in place. New requests are
// prepended so listings come back most-recent-first.
func (s *MemoryServiceRequestStore) Upsert(req *models.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[req.ID]; !exists {
		s.order = append([]string{req.ID}, s.order...)
	}
	s.requests[req.ID] = cloneRequest(req)
	return nil
}

// MemoryUserStore keeps user accounts in an owned map keyed by id
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string // lowercased email -> id
	order   []string
}

// NewMemoryUserStore creates an empty in-memory user store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

// Get returns the user with the given id
func (s *MemoryUserStore) Get(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

// GetByEmail returns the user with the given email, ignoring case
func (s *MemoryUserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// List returns all users in insertion order
func (s *MemoryUserStore) List() ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.User, 0, len(s.order))
	for _, id := range s.order {
		u := *s.users[id]
		result = append(result, &u)
	}
	return result, nil
}

// Upsert inserts or replaces a user account
func (s *MemoryUserStore) Upsert(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		delete(s.byEmail, strings.ToLower(existing.Email))
	} else {
		s.order = append(s.order, user.ID)
	}
	u := *user
	s.users[user.ID] = &u
	s.byEmail[strings.ToLower(user.Email)] = user.ID
	return nil
}

// MemoryTechnicianStore keeps the technician directory in an owned map keyed by id
type MemoryTechnicianStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.TechnicianProfile
	order    []string
}

// NewMemoryTechnicianStore creates an empty in-memory technician store
func NewMemoryTechnicianStore() *MemoryTechnicianStore {
	return &MemoryTechnicianStore{
		profiles: make(map[string]*models.TechnicianProfile),
	}
}

// Get returns the technician profile with the given id
func (s *MemoryTechnicianStore) Get(id string) (*models.TechnicianProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := *profile
	return &p, nil
}

// List returns all technician profiles in insertion order
func (s *MemoryTechnicianStore) List() ([]*models.TechnicianProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.TechnicianProfile, 0, len(s.order))
	for _, id := range s.order {
		p := *s.profiles[id]
		result = append(result, &p)
	}
	return result, nil
}

// Upsert inserts or replaces a technician profile
func (s *MemoryTechnicianStore) Upsert(profile *models.TechnicianProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[profile.ID]; !exists {
		s.order = append(s.order, profile.ID)
	}
	p := *profile
	s.profiles[profile.ID] = &p
	return nil
}
