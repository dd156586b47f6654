package main

import (
	"log"
	"time"

	"home-service-server/models"
	"home-service-server/repository"
)

// seedDemoData loads the demo accounts and a few sample requests into the
// in-memory stores so the API is usable right after startup.
func seedDemoData(
	users repository.UserRepository,
	technicians repository.TechnicianRepository,
	requests repository.ServiceRequestRepository,
) {
	now := time.Now()

	demoUsers := []*models.User{
		{
			ID:           "user-1",
			FullName:     "Sarah Connor",
			Email:        "sarah@example.com",
			AvatarURL:    "https://i.pravatar.cc/150?u=user-1",
			Role:         models.RoleCustomer,
			RegisteredAt: now.AddDate(0, -3, 0),
			Address:      "123 Main St, Springfield",
			ContactPhone: "555-0101",
			IsActive:     true,
		},
		{
			ID:           "tech-1",
			FullName:     "John Wick",
			Email:        "john@example.com",
			AvatarURL:    "https://i.pravatar.cc/150?u=tech-1",
			Role:         models.RoleTechnician,
			RegisteredAt: now.AddDate(0, -6, 0),
			IsActive:     true,
		},
		{
			ID:           "tech-2",
			FullName:     "Alice Smith",
			Email:        "alice@example.com",
			AvatarURL:    "https://i.pravatar.cc/150?u=tech-2",
			Role:         models.RoleTechnician,
			RegisteredAt: now.AddDate(0, -5, 0),
			IsActive:     true,
		},
		{
			ID:           "tech-3",
			FullName:     "Robert Brown",
			Email:        "robert@example.com",
			AvatarURL:    "https://i.pravatar.cc/150?u=tech-3",
			Role:         models.RoleTechnician,
			RegisteredAt: now.AddDate(0, -2, 0),
			IsActive:     true,
		},
		{
			ID:           "admin-1",
			FullName:     "The Director",
			Email:        "admin@example.com",
			AvatarURL:    "https://i.pravatar.cc/150?u=admin-1",
			Role:         models.RoleAdmin,
			RegisteredAt: now.AddDate(-1, 0, 0),
			IsActive:     true,
		},
	}
	for _, u := range demoUsers {
		if err := users.Upsert(u); err != nil {
			log.Printf("⚠️ Failed to seed user %s: %v", u.ID, err)
		}
	}

	demoTechnicians := []*models.TechnicianProfile{
		{
			ID:            "tech-1",
			FullName:      "John Wick",
			Specialty:     "Plumbing",
			Rating:        4.8,
			Status:        models.TechnicianAvailable,
			AvatarURL:     "https://i.pravatar.cc/150?u=tech-1",
			JobsCompleted: 124,
		},
		{
			ID:            "tech-2",
			FullName:      "Alice Smith",
			Specialty:     "Electrical",
			Rating:        4.6,
			Status:        models.TechnicianBusy,
			BusyUntil:     "4:00 PM",
			AvatarURL:     "https://i.pravatar.cc/150?u=tech-2",
			JobsCompleted: 98,
		},
		{
			ID:            "tech-3",
			FullName:      "Robert Brown",
			Specialty:     "IT Support",
			Rating:        4.9,
			Status:        models.TechnicianAvailable,
			AvatarURL:     "https://i.pravatar.cc/150?u=tech-3",
			JobsCompleted: 57,
		},
	}
	for _, p := range demoTechnicians {
		if err := technicians.Upsert(p); err != nil {
			log.Printf("⚠️ Failed to seed technician %s: %v", p.ID, err)
		}
	}

	techID := "tech-1"
	leakyCost := 150.0
	outletCost := 180.0

	demoRequests := []*models.ServiceRequest{
		{
			ID:          "req-1",
			UserID:      "user-1",
			Title:       "Leaky faucet",
			Description: "The kitchen faucet has been dripping for a week.",
			Category:    "Plumbing",
			Status:      models.StatusInProgress,
			RequestedAt: now.Add(-48 * time.Hour),
			RequestedTimeslot: &models.Timeslot{
				Date: now.Add(-24 * time.Hour).Format("2006-01-02"),
				Time: "10:00 AM",
			},
			Address:              "123 Main St, Springfield",
			ContactPhone:         "555-0101",
			AssignedTechnicianID: &techID,
			Cost:                 &leakyCost,
			Messages: []models.Message{
				{
					ID:               "msg-1",
					ServiceRequestID: "req-1",
					SenderID:         "user-1",
					Text:             "The leak is under the sink, the cabinet is soaked.",
					Timestamp:        now.Add(-36 * time.Hour),
				},
				{
					ID:               "msg-2",
					ServiceRequestID: "req-1",
					SenderID:         "tech-1",
					Text:             "Thanks, I will bring a replacement valve.",
					Timestamp:        now.Add(-35 * time.Hour),
				},
			},
		},
		{
			ID:          "req-2",
			UserID:      "user-1",
			Title:       "Dead power outlet",
			Description: "The outlet in the living room stopped working.",
			Category:    "Electrical",
			Status:      models.StatusPending,
			RequestedAt: now.Add(-2 * time.Hour),
			Address:     "123 Main St, Springfield",
			ContactPhone: "555-0101",
			Cost:        &outletCost,
		},
	}
	for _, r := range demoRequests {
		if err := requests.Upsert(r); err != nil {
			log.Printf("⚠️ Failed to seed request %s: %v", r.ID, err)
		}
	}

	log.Printf("🌱 Seeded %d users, %d technicians, %d service requests",
		len(demoUsers), len(demoTechnicians), len(demoRequests))
}
