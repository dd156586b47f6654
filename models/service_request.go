package models

import (
	"time"

	"gorm.io/gorm"
)

// RequestStatus represents the current status of a service request
type RequestStatus string

const (
	StatusPending         RequestStatus = "pending"
	StatusAccepted        RequestStatus = "accepted"
	StatusInProgress      RequestStatus = "in_progress"
	StatusCompleted       RequestStatus = "completed"
	StatusAwaitingPayment RequestStatus = "awaiting_payment"
	StatusPaid            RequestStatus = "paid"
	StatusCancelled       RequestStatus = "cancelled"
)

// Terminal reports whether no further transitions leave this status.
func (s RequestStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusPaid
}

// Timeslot is the customer-selected date and time-of-day for scheduled service
type Timeslot struct {
	Date string `json:"date" gorm:"size:10"` // "YYYY-MM-DD"
	Time string `json:"time" gorm:"size:10"` // e.g. "10:00 AM"
}

// ServiceRequest represents a unit of work requested by a customer, tracked
// through the lifecycle state machine. It is mutated only through the
// lifecycle service, never directly.
type ServiceRequest struct {
	ID                   string            `json:"id" gorm:"primaryKey;size:64"`
	UserID               string            `json:"userId" gorm:"size:64;not null;index"`
	Title                string            `json:"title" gorm:"size:200;not null"`
	Description          string            `json:"description" gorm:"type:text"`
	Category             string            `json:"category" gorm:"size:50;not null"`
	Status               RequestStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	RequestedAt          time.Time         `json:"requestedAt" gorm:"not null"`
	RequestedTimeslot    *Timeslot         `json:"requestedTimeslot,omitempty" gorm:"embedded;embeddedPrefix:timeslot_"`
	Address              string            `json:"address,omitempty" gorm:"type:text"`
	ContactPhone         string            `json:"contactPhone" gorm:"size:20"`
	CompletedAt          *time.Time        `json:"completedAt,omitempty"`
	AssignedTechnicianID *string           `json:"assignedTechnicianId,omitempty" gorm:"size:64;index"`
	Cost                 *float64          `json:"cost,omitempty" gorm:"type:decimal(10,2)"`
	CancellationReason   string            `json:"cancellationReason,omitempty" gorm:"type:text"`
	Invoice              *Invoice          `json:"invoice,omitempty" gorm:"foreignKey:ServiceRequestID"`
	UserRating           *Rating           `json:"userRating,omitempty" gorm:"embedded;embeddedPrefix:user_rating_"`
	TechnicianRating     *Rating           `json:"technicianRating,omitempty" gorm:"embedded;embeddedPrefix:technician_rating_"`
	Media                []MediaAttachment `json:"media,omitempty" gorm:"foreignKey:ServiceRequestID"`
	Messages             []Message         `json:"messages,omitempty" gorm:"foreignKey:ServiceRequestID"`
	CreatedAt            time.Time         `json:"-"`
	UpdatedAt            time.Time         `json:"-"`
}

// TableName specifies the table name for the ServiceRequest model
func (ServiceRequest) TableName() string {
	return "service_requests"
}

// AfterFind normalizes embedded optionals: gorm materializes pointer-embedded
// structs even when every column is NULL, which would serialize as zero values.
func (r *ServiceRequest) AfterFind(tx *gorm.DB) error {
	if r.RequestedTimeslot != nil && r.RequestedTimeslot.Date == "" && r.RequestedTimeslot.Time == "" {
		r.RequestedTimeslot = nil
	}
	if r.UserRating != nil && r.UserRating.RatedAt.IsZero() {
		r.UserRating = nil
	}
	if r.TechnicianRating != nil && r.TechnicianRating.RatedAt.IsZero() {
		r.TechnicianRating = nil
	}
	return nil
}

// ServiceRequestCreate represents the request structure for creating a service request
type ServiceRequestCreate struct {
	Title             string            `json:"title" binding:"required"`
	Category          string            `json:"category" binding:"required"`
	Description       string            `json:"description"`
	Address           string            `json:"address" binding:"required"`
	ContactPhone      string            `json:"contactPhone" binding:"required"`
	RequestedTimeslot *Timeslot         `json:"requestedTimeslot"`
	Media             []MediaAttachment `json:"media"`
}
