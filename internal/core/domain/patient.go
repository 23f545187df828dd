package domain

// Patient holds the medical profile registered for a person.
// UserID is an optional, exclusive link to the owning account.
type Patient struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	MedicalHistory string `json:"medical_history"`
	UserID         *int64 `json:"user_id,omitempty"`
}
