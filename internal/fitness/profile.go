package fitness

import (
	"time"
)

const (
	GuestUserID = "guest"
	DefaultName = "Athlete"

	// DateLayout is the calendar date format used for session and streak dates.
	DateLayout = "2006-01-02"

	XPPerLevel = 1000
)

type UserProfile struct {
	UserID             string      `json:"userId"`
	Name               string      `json:"name"`
	AvatarURL          string      `json:"avatarUrl,omitempty"`
	Level              Difficulty  `json:"level"`
	AvailableEquipment []Equipment `json:"availableEquipment"`
	Streak             int         `json:"streak"`
	// LastWorkoutDate is empty when the user never finished a session.
	LastWorkoutDate string `json:"lastWorkoutDate,omitempty"`
	XP              int    `json:"xp"`
	LevelNumber     int    `json:"levelNumber"`
}

// LevelForXP derives the level number, which is never stored independently of xp.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// NormalizeUserID maps an empty identifier to the guest user.
func NormalizeUserID(userID string) string {
	if userID == "" {
		return GuestUserID
	}
	return userID
}

func DefaultProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:             NormalizeUserID(userID),
		Name:               DefaultName,
		Level:              DifficultyBeginner,
		AvailableEquipment: []Equipment{EquipmentBodyweight},
		Streak:             0,
		LastWorkoutDate:    "",
		XP:                 0,
		LevelNumber:        1,
	}
}

// Normalize clamps negative counters and recomputes the level from xp.
func (p *UserProfile) Normalize() {
	p.UserID = NormalizeUserID(p.UserID)
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
	if p.AvailableEquipment == nil {
		p.AvailableEquipment = []Equipment{}
	}
	p.LevelNumber = LevelForXP(p.XP)
}

// Clone returns a deep copy, so callers never share the equipment slice.
func (p *UserProfile) Clone() *UserProfile {
	c := *p
	c.AvailableEquipment = append([]Equipment(nil), p.AvailableEquipment...)
	return &c
}

// WithEdits returns a copy of p carrying the user editable fields of edit.
// Streak, last workout date, xp and level stay as in p.
func (p *UserProfile) WithEdits(edit *UserProfile) *UserProfile {
	merged := p.Clone()
	merged.Name = edit.Name
	merged.AvatarURL = edit.AvatarURL
	merged.Level = edit.Level
	merged.AvailableEquipment = append([]Equipment(nil), edit.AvailableEquipment...)
	return merged
}

// LastWorkout parses the last workout date, reporting false when absent or malformed.
func (p *UserProfile) LastWorkout() (time.Time, bool) {
	if p.LastWorkoutDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, p.LastWorkoutDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Validate checks the user editable part of the profile.
func (p *UserProfile) Validate() error {
	if p.Name == "" {
		return ErrInvalidProfile("name is empty")
	}
	if !p.Level.IsValid() {
		return ErrInvalidProfile("invalid level: " + p.Level.String())
	}
	for _, eq := range p.AvailableEquipment {
		if !eq.IsValid() {
			return ErrInvalidProfile("invalid equipment: " + eq.String())
		}
	}
	if p.LastWorkoutDate != "" {
		if _, err := time.Parse(DateLayout, p.LastWorkoutDate); err != nil {
			return ErrInvalidProfile("invalid last workout date: " + p.LastWorkoutDate)
		}
	}
	return nil
}

type ErrInvalidProfile string

func (e ErrInvalidProfile) Error() string {
	return "invalid profile: " + string(e)
}
