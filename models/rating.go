package models

import "time"

// RatingAuthor identifies which side of the job wrote a rating. A request
// carries at most one rating per author.
type RatingAuthor string

const (
	RatingByCustomer   RatingAuthor = "customer"
	RatingByTechnician RatingAuthor = "technician"
)

// IsValid checks if the rating author is one of the two known slots
func (a RatingAuthor) IsValid() bool {
	return a == RatingByCustomer || a == RatingByTechnician
}

// Rating is post-completion feedback exchanged between customer and technician
type Rating struct {
	Value    int       `json:"value" gorm:"check:value >= 1 AND value <= 5"`
	Feedback string    `json:"feedback,omitempty" gorm:"type:text"`
	RatedAt  time.Time `json:"ratedAt"`
}

// RatingSubmit represents the request structure for submitting a rating
type RatingSubmit struct {
	Value    int    `json:"value" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}
