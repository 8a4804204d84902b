package models

// TimestampLayout is the format stored in the faculty table's last_updated column.
const TimestampLayout = "2006-01-02 15:04:05"

// FacultyMember is one canonical faculty record after normalization.
// Optional columns are pointers; nil means the scraper had no usable value,
// there are no "N/A" sentinel strings past the normalizer.
type FacultyMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Education   *string `json:"education"`
	BioInterest *string `json:"bio_interest"`
	ProfileLink *string `json:"profile_link"`
	ImageURL    *string `json:"image_url"`
	LastUpdated string  `json:"last_updated"`
}
