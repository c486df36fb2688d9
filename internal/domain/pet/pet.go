// Package pet defines the core domain entity for owned pets.
// This package is PURE and must NOT import any infrastructure packages (network, storage, platform).
package pet

import (
	"time"
)

const (
	// MinNameLength and MaxNameLength bound a pet's display name.
	MinNameLength = 1
	MaxNameLength = 25

	// DefaultName is assigned at hatch time until the owner renames the pet.
	DefaultName = "Pet"
)

// Mood is a presentation-level summary derived from a pet's stats.
type Mood string

const (
	MoodNeglected Mood = "Neglected"
	MoodStarving  Mood = "Starving"
	MoodGloomy    Mood = "Gloomy"
	MoodGrubby    Mood = "Grubby"
	MoodContent   Mood = "Content"
	MoodJoyful    Mood = "Joyful"
)

// Pet represents one owner's simulated companion. Exactly one per owner.
type Pet struct {
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	BornAt      time.Time `json:"born_at"`
	LastPrizeAt time.Time `json:"last_prize_at"` // zero value = never claimed, so the first claim is free
}

// ValidName reports whether a candidate display name is acceptable.
func ValidName(name string) bool {
	n := len([]rune(name))
	return n >= MinNameLength && n <= MaxNameLength
}

// Age returns how long the pet has existed as of now.
func (p Pet) Age(now time.Time) time.Duration {
	return now.Sub(p.BornAt)
}

// StatValue is one stat as seen by callers: current value joined with its schema.
type StatValue struct {
	Name        string     `json:"stat_name"`
	Value       int        `json:"value"`
	Cap         *int       `json:"cap"`
	DisplayName string     `json:"display_name"`
	LastUpdated *time.Time `json:"last_updated"`
}

// DeriveMood summarizes the pet's condition from its care stats.
// The thresholds mirror the care loop: anything under 40 on a single
// stat names that stat's misery, sustained neglect wins over all.
func DeriveMood(hunger, happiness, cleanliness, willpower int) Mood {
	avg := (hunger + happiness + cleanliness) / 3

	switch {
	case willpower < 30 || avg < 25:
		return MoodNeglected
	case hunger < 40:
		return MoodStarving
	case happiness < 40:
		return MoodGloomy
	case cleanliness < 40:
		return MoodGrubby
	case avg < 85:
		return MoodContent
	}
	return MoodJoyful
}
