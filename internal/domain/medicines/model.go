package medicines

import (
	"regexp"
	"time"
)

// Status del día para una toma.
// @Enum pending, taken, missed
type Status string

const (
	StatusPending Status = "pending"
	StatusTaken   Status = "taken"
	StatusMissed  Status = "missed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusTaken, StatusMissed:
		return true
	}
	return false
}

var clockRe = regexp.MustCompile(`^[0-2]\d:[0-5]\d$`)

// ValidTime reporta si t es "HH:MM" 24h.
func ValidTime(t string) bool {
	return clockRe.MatchString(t)
}

// Medicine es una toma registrada por el usuario.
type Medicine struct {
	ID     string
	UserID string

	Name     string
	Dosage   string
	Time     string // "HH:MM" 24h; ordenar como string ordena cronológicamente
	Duration string // texto libre: "7 days"

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
