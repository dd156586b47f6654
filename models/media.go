package models

// MediaType distinguishes the two supported attachment kinds
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// IsValid checks if the media type is a known kind
func (t MediaType) IsValid() bool {
	return t == MediaImage || t == MediaVideo
}

// MediaAttachment is a photo or video attached to a service request at creation
type MediaAttachment struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	ServiceRequestID string    `json:"-" gorm:"size:64;not null;index"`
	Type             MediaType `json:"type" gorm:"type:varchar(10);not null"`
	URL              string    `json:"url" gorm:"size:512;not null"`
}

// TableName specifies the table name for the MediaAttachment model
func (MediaAttachment) TableName() string {
	return "media_attachments"
}
