package models

// ServiceCategories is the fixed set of service categories a request may use
var ServiceCategories = []string{
	"Plumbing",
	"Electrical",
	"IT Support",
	"HVAC",
	"Appliance Repair",
	"Landscaping",
	"Other",
}

// TimeSlots is the set of bookable time-of-day values for scheduled service
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
}

// IsValidCategory checks if a category is one of the fixed set
func IsValidCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}
