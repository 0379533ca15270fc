package programs

import "time"

type Program struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ProgramType string    `json:"programType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
