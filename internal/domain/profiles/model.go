package profiles

import "time"

// Profile son los datos del paciente que usa el generador de schedules.
type Profile struct {
	UserID string

	Name       string
	Age        int
	Conditions []string

	UpdatedAt time.Time
}
