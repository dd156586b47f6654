package models

// TechnicianStatus represents a technician's current availability
type TechnicianStatus string

const (
	TechnicianAvailable TechnicianStatus = "available"
	TechnicianBusy      TechnicianStatus = "busy"
	TechnicianOffline   TechnicianStatus = "offline"
)

// TechnicianProfile is the service-provider directory entry for a user with
// the technician role. Its ID matches the owning User's ID.
type TechnicianProfile struct {
	ID            string           `json:"id" gorm:"primaryKey;size:64"`
	FullName      string           `json:"name" gorm:"size:255;not null"`
	Specialty     string           `json:"specialty" gorm:"size:50;not null"`
	Rating        float64          `json:"rating" gorm:"type:decimal(3,1)"`
	Status        TechnicianStatus `json:"status" gorm:"type:varchar(20);not null;default:'available'"`
	BusyUntil     string           `json:"busyUntil,omitempty" gorm:"size:20"` // e.g. "4:00 PM"
	AvatarURL     string           `json:"avatarUrl" gorm:"size:512"`
	JobsCompleted int              `json:"jobsCompleted" gorm:"default:0"`
}

// TableName specifies the table name for the TechnicianProfile model
func (TechnicianProfile) TableName() string {
	return "technician_profiles"
}
