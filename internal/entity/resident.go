package entity

import "time"

type Resident struct {
	ID            string    `json:"id"`
	ResidentID    string    `json:"resident_id"`
	UserID        string    `json:"user_id"`
	FirstName     string    `json:"first_name"`
	MiddleName    string    `json:"middle_name"`
	LastName      string    `json:"last_name"`
	NameSuffix    string    `json:"name_suffix"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	ForReview     bool      `json:"for_review"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          *User     `json:"user,omitempty"`
}

// FullName joins the name parts, skipping empty ones.
func (r *Resident) FullName() string {
	name := r.FirstName
	for _, part := range []string{r.MiddleName, r.LastName, r.NameSuffix} {
		if part != "" {
			if name != "" {
				name += " "
			}
			name += part
		}
	}
	return name
}

// InactiveResident is a report row for residents with no login or profile
// activity inside the inactivity window.
type InactiveResident struct {
	ID               string    `json:"id"`
	ResidentID       string    `json:"resident_id"`
	FirstName        string    `json:"first_name"`
	MiddleName       string    `json:"middle_name"`
	LastName         string    `json:"last_name"`
	NameSuffix       string    `json:"name_suffix"`
	Email            string    `json:"email"`
	ContactNumber    string    `json:"contact_number"`
	FullName         string    `json:"full_name"`
	UserID           string    `json:"user_id"`
	LastActivityDate time.Time `json:"last_activity_date"`
	DaysInactive     int       `json:"days_inactive"`
	ForReview        bool      `json:"for_review"`
	User             *User     `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
