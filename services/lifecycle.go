package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"home-service-server/models"
	"home-service-server/repository"
)

// taxRate is the fixed rate applied when an invoice is issued
const taxRate = 0.08

// requesterCancelReason is recorded when the customer cancels their own request
const requesterCancelReason = "Cancelled by user."

// Lifecycle owns the service-request collection and is the only sanctioned
// way to mutate it. Every operation validates the current status against the
// state machine before touching the record; rejected operations leave state
// unchanged and return a typed error.
//
// The state machine:
//
//	pending    --accept-------------> accepted
//	pending    --cancelByRequester--> cancelled
//	accepted   --cancelByRequester--> cancelled
//	accepted   --start--------------> in_progress
//	in_progress --complete----------> completed
//	completed  --sendInvoice--------> awaiting_payment
//	awaiting_payment --pay----------> paid
//	any non-terminal --cancelByTechnician--> cancelled
//
// cancelled and paid are terminal.
type Lifecycle struct {
	requests    repository.ServiceRequestRepository
	technicians repository.TechnicianRepository
	identity    *Identity
	pricing     Pricing
	notifier    Notifier
}

// NewLifecycle creates the lifecycle service. A nil notifier is replaced with
// a no-op one.
func NewLifecycle(
	requests repository.ServiceRequestRepository,
	technicians repository.TechnicianRepository,
	identity *Identity,
	pricing Pricing,
	notifier Notifier,
) *Lifecycle {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Lifecycle{
		requests:    requests,
		technicians: technicians,
		identity:    identity,
		pricing:     pricing,
		notifier:    notifier,
	}
}

// Get returns a single request by id
func (l *Lifecycle) Get(requestID string) (*models.ServiceRequest, error) {
	req, err := l.requests.Get(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// List returns every request, newest first
func (l *Lifecycle) List() ([]*models.ServiceRequest, error) {
	return l.requests.List()
}

// ListForUser returns the requests created by the given user, newest first
func (l *Lifecycle) ListForUser(userID string) ([]*models.ServiceRequest, error) {
	return l.requests.ListByUser(userID)
}

// ListForTechnician returns the requests assigned to the given technician, newest first
func (l *Lifecycle) ListForTechnician(technicianID string) ([]*models.ServiceRequest, error) {
	return l.requests.ListByTechnician(technicianID)
}

// ListOpen returns the unassigned pending requests technicians can pick up
func (l *Lifecycle) ListOpen() ([]*models.ServiceRequest, error) {
	return l.requests.ListByStatus(models.StatusPending)
}

// ListByStatus returns every request currently in the given status, newest first
func (l *Lifecycle) ListByStatus(status models.RequestStatus) ([]*models.ServiceRequest, error) {
	return l.requests.ListByStatus(status)
}

// Create registers a new pending request for the given user. Cost comes from
// the pricing collaborator; the requester's profile is backfilled with the
// submitted address and phone if it lacks them.
func (l *Lifecycle) Create(requesterID string, in models.ServiceRequestCreate) (*models.ServiceRequest, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
	}
	if !models.IsValidCategory(in.Category) {
		return nil, ErrUnknownCategory
	}
	for _, m := range in.Media {
		if !m.Type.IsValid() {
			return nil, fmt.Errorf("%w: media type must be image or video", ErrInvalidArgument)
		}
	}
	if _, err := l.identity.GetUser(requesterID); err != nil {
		return nil, err
	}

	cost := l.pricing.Estimate(in.Category)
	req := &models.ServiceRequest{
		ID:                uuid.NewString(),
		UserID:            requesterID,
		Title:             strings.TrimSpace(in.Title),
		Description:       in.Description,
		Category:          in.Category,
		Status:            models.StatusPending,
		RequestedAt:       time.Now(),
		RequestedTimeslot: in.RequestedTimeslot,
		Address:           in.Address,
		ContactPhone:      in.ContactPhone,
		Cost:              &cost,
	}
	for _, m := range in.Media {
		m.ServiceRequestID = req.ID
		req.Media = append(req.Media, m)
	}

	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	if err := l.identity.BackfillContact(requesterID, in.Address, in.ContactPhone); err != nil {
		log.Printf("⚠️ Failed to backfill contact info for user %s: %v", requesterID, err)
	}

	log.Printf("📋 Service request %s created (%s, $%.2f estimate)", req.ID, req.Category, cost)
	l.notifier.RequestUpdated(req, EventCreated)
	return req, nil
}

// Accept assigns a pending request to a technician
func (l *Lifecycle) Accept(requestID, technicianID string) (*models.ServiceRequest, error) {
	if strings.TrimSpace(technicianID) == "" {
		return nil, fmt.Errorf("%w: technician id must not be empty", ErrInvalidArgument)
	}
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot accept a %s request", ErrInvalidTransition, req.Status)
	}

	techID := technicianID
	req.Status = models.StatusAccepted
	req.AssignedTechnicianID = &techID
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	l.markTechnician(technicianID, models.TechnicianBusy)
	log.Printf("✅ Service request %s accepted by technician %s", requestID, technicianID)
	l.notifier.RequestUpdated(req, EventAccepted)
	return req, nil
}

// Start moves an accepted request into progress
func (l *Lifecycle) Start(requestID string) (*models.ServiceRequest, error) {
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusAccepted {
		return nil, fmt.Errorf("%w: cannot start a %s request", ErrInvalidTransition, req.Status)
	}

	req.Status = models.StatusInProgress
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	log.Printf("🔧 Work started on service request %s", requestID)
	l.notifier.RequestUpdated(req, EventStarted)
	return req, nil
}

// Complete finishes an in-progress request and stamps completedAt
func (l *Lifecycle) Complete(requestID string) (*models.ServiceRequest, error) {
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusInProgress {
		return nil, fmt.Errorf("%w: cannot complete a %s request", ErrInvalidTransition, req.Status)
	}

	now := time.Now()
	req.Status = models.StatusCompleted
	req.CompletedAt = &now
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	if req.AssignedTechnicianID != nil {
		l.recordCompletedJob(*req.AssignedTechnicianID)
	}
	log.Printf("✅ Service request %s completed", requestID)
	l.notifier.RequestUpdated(req, EventCompleted)
	return req, nil
}

// CancelByRequester cancels the customer's own request. Only pending and
// accepted requests can be cancelled from this side; the reason is a fixed
// system string.
func (l *Lifecycle) CancelByRequester(requestID string) (*models.ServiceRequest, error) {
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending && req.Status != models.StatusAccepted {
		return nil, fmt.Errorf("%w: cannot cancel a %s request", ErrInvalidTransition, req.Status)
	}
	return l.cancel(req, requesterCancelReason)
}

// CancelByTechnician cancels any non-terminal request, recording the supplied
// reason verbatim. The reason must not be blank.
func (l *Lifecycle) CancelByTechnician(requestID, reason string) (*models.ServiceRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyReason
	}
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, fmt.Errorf("%w: cannot cancel a %s request", ErrInvalidTransition, req.Status)
	}
	return l.cancel(req, reason)
}

func (l *Lifecycle) cancel(req *models.ServiceRequest, reason string) (*models.ServiceRequest, error) {
	req.Status = models.StatusCancelled
	req.CancellationReason = reason
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	if req.AssignedTechnicianID != nil {
		l.markTechnician(*req.AssignedTechnicianID, models.TechnicianAvailable)
	}
	log.Printf("🚫 Service request %s cancelled: %s", req.ID, reason)
	l.notifier.RequestUpdated(req, EventCancelled)
	return req, nil
}

// SendInvoice issues the invoice for a completed request. Tax is a fixed 8%
// of the estimated cost; the total is computed once at issuance and never
// recomputed.
func (l *Lifecycle) SendInvoice(requestID string) (*models.ServiceRequest, error) {
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: cannot invoice a %s request", ErrInvalidTransition, req.Status)
	}
	if req.Cost == nil {
		return nil, ErrMissingCost
	}

	subtotal := *req.Cost
	tax := math.Round(subtotal*taxRate*100) / 100
	req.Status = models.StatusAwaitingPayment
	req.Invoice = &models.Invoice{
		ID:               uuid.NewString(),
		ServiceRequestID: req.ID,
		IssuedAt:         time.Now(),
		Items: []models.InvoiceItem{
			{Description: fmt.Sprintf("%s Service", req.Category), Amount: subtotal},
		},
		Tax:   tax,
		Total: subtotal + tax,
	}
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	log.Printf("🧾 Invoice %s issued for request %s (total $%.2f)", req.Invoice.ID, requestID, req.Invoice.Total)
	l.notifier.RequestUpdated(req, EventInvoiceSent)
	return req, nil
}

// PayInvoice settles the invoice on an awaiting-payment request
func (l *Lifecycle) PayInvoice(requestID string) (*models.ServiceRequest, error) {
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusAwaitingPayment || req.Invoice == nil {
		return nil, fmt.Errorf("%w: request %s has no payable invoice", ErrInvalidTransition, requestID)
	}

	now := time.Now()
	req.Status = models.StatusPaid
	req.Invoice.PaidAt = &now
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	log.Printf("💰 Invoice %s paid for request %s", req.Invoice.ID, requestID)
	l.notifier.RequestUpdated(req, EventPaid)
	return req, nil
}

// SubmitRating writes one of the two rating slots on a paid request. Each
// slot is write-once: the customer rates the technician, the technician rates
// the customer.
func (l *Lifecycle) SubmitRating(requestID string, author models.RatingAuthor, value int, feedback string) (*models.ServiceRequest, error) {
	if !author.IsValid() {
		return nil, fmt.Errorf("%w: unknown rating author %q", ErrInvalidArgument, author)
	}
	if value < 1 || value > 5 {
		return nil, ErrRatingOutOfRange
	}
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPaid {
		return nil, fmt.Errorf("%w: can only rate a paid request", ErrInvalidTransition)
	}

	rating := &models.Rating{
		Value:    value,
		Feedback: strings.TrimSpace(feedback),
		RatedAt:  time.Now(),
	}
	switch author {
	case models.RatingByCustomer:
		if req.UserRating != nil {
			return nil, ErrAlreadyRated
		}
		req.UserRating = rating
	case models.RatingByTechnician:
		if req.TechnicianRating != nil {
			return nil, ErrAlreadyRated
		}
		req.TechnicianRating = rating
	}
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	if author == models.RatingByCustomer && req.AssignedTechnicianID != nil {
		l.refreshTechnicianRating(*req.AssignedTechnicianID)
	}
	log.Printf("⭐ Rating (%d/5) submitted by %s on request %s", value, author, requestID)
	l.notifier.RequestUpdated(req, EventRated)
	return req, nil
}

// SendMessage appends a chat message to the request's transcript. Blank
// messages are rejected; the list is append-only.
func (l *Lifecycle) SendMessage(requestID, senderID, text string) (*models.ServiceRequest, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	req, err := l.Get(requestID)
	if err != nil {
		return nil, err
	}

	req.Messages = append(req.Messages, models.Message{
		ID:               uuid.NewString(),
		ServiceRequestID: req.ID,
		SenderID:         senderID,
		Text:             text,
		Timestamp:        time.Now(),
	})
	if err := l.requests.Upsert(req); err != nil {
		return nil, err
	}

	l.notifier.RequestUpdated(req, EventMessage)
	return req, nil
}

// markTechnician flips the directory status for an assigned technician.
// Directory sync failures never fail the lifecycle operation.
func (l *Lifecycle) markTechnician(technicianID string, status models.TechnicianStatus) {
	profile, err := l.technicians.Get(technicianID)
	if err != nil {
		return
	}
	profile.Status = status
	if status == models.TechnicianAvailable {
		profile.BusyUntil = ""
	}
	if err := l.technicians.Upsert(profile); err != nil {
		log.Printf("⚠️ Failed to update technician %s status: %v", technicianID, err)
	}
}

func (l *Lifecycle) recordCompletedJob(technicianID string) {
	profile, err := l.technicians.Get(technicianID)
	if err != nil {
		return
	}
	profile.JobsCompleted++
	profile.Status = models.TechnicianAvailable
	profile.BusyUntil = ""
	if err := l.technicians.Upsert(profile); err != nil {
		log.Printf("⚠️ Failed to update technician %s job count: %v", technicianID, err)
	}
}

// refreshTechnicianRating recomputes the directory average from every
// customer rating on the technician's assigned requests.
func (l *Lifecycle) refreshTechnicianRating(technicianID string) {
	assigned, err := l.requests.ListByTechnician(technicianID)
	if err != nil {
		return
	}
	var sum, count float64
	for _, r := range assigned {
		if r.UserRating != nil {
			sum += float64(r.UserRating.Value)
			count++
		}
	}
	if count == 0 {
		return
	}
	profile, err := l.technicians.Get(technicianID)
	if err != nil {
		return
	}
	profile.Rating = math.Round(sum/count*10) / 10
	if err := l.technicians.Upsert(profile); err != nil {
		log.Printf("⚠️ Failed to update technician %s rating: %v", technicianID, err)
	}
}
