package jobs

import (
	"log"
	"time"

	"home-service-server/models"
	"home-service-server/repository"
	"home-service-server/services"
)

// ReminderJob periodically re-announces pending requests that no technician
// has picked up, so they resurface on connected technician clients.
type ReminderJob struct {
	requests   repository.ServiceRequestRepository
	notifier   services.Notifier
	interval   time.Duration
	staleAfter time.Duration
	stopChan   chan bool
}

// NewReminderJob creates a reminder job over the given store and notifier
func NewReminderJob(requests repository.ServiceRequestRepository, notifier services.Notifier, interval, staleAfter time.Duration) *ReminderJob {
	if notifier == nil {
		notifier = services.NopNotifier{}
	}
	return &ReminderJob{
		requests:   requests,
		notifier:   notifier,
		interval:   interval,
		staleAfter: staleAfter,
		stopChan:   make(chan bool),
	}
}

// Start begins the reminder job
func (j *ReminderJob) Start() {
	go j.run()
	log.Println("🚀 Pending-request reminder job started")
}

// Stop stops the reminder job
func (j *ReminderJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Pending-request reminder job stopped")
}

func (j *ReminderJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.remindStaleRequests()
		case <-j.stopChan:
			return
		}
	}
}

// remindStaleRequests finds pending requests older than the stale threshold
// and re-broadcasts them
func (j *ReminderJob) remindStaleRequests() {
	pending, err := j.requests.ListByStatus(models.StatusPending)
	if err != nil {
		log.Printf("❌ Error checking stale requests: %v", err)
		return
	}

	cutoff := time.Now().Add(-j.staleAfter)
	count := 0
	for _, req := range pending {
		if req.RequestedAt.After(cutoff) {
			continue
		}
		j.notifier.RequestUpdated(req, services.EventCreated)
		count++
	}

	if count > 0 {
		log.Printf("⏰ Re-announced %d stale pending requests", count)
	}
}
