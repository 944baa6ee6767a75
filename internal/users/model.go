package users

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/careers"
)

// User is a stored profile together with its recommendation history.
type User struct {
	ID              string                   `json:"id,omitempty"`
	Name            string                   `json:"name"`
	Email           string                   `json:"email"`
	Skills          []string                 `json:"skills"`
	Hobbies         []string                 `json:"hobbies"`
	CareerGoal      string                   `json:"careerGoal"`
	Recommendations []careers.Recommendation `json:"recommendations"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// Profile is the caller-supplied part of a user record.
type Profile struct {
	Name       string
	Email      string
	Skills     []string
	Hobbies    []string
	CareerGoal string
}

// NewUser builds a fresh record with an empty history.
func NewUser(p Profile) User {
	return User{
		ID:              uuid.NewString(),
		Name:            p.Name,
		Email:           p.Email,
		Skills:          nonNil(p.Skills),
		Hobbies:         nonNil(p.Hobbies),
		CareerGoal:      p.CareerGoal,
		Recommendations: []careers.Recommendation{},
	}
}

// Input returns the recommendation input for this profile.
func (p Profile) Input() careers.Input {
	return careers.Input{Skills: p.Skills, Hobbies: p.Hobbies, CareerGoal: p.CareerGoal}
}

// NormalizeEmail trims and lowercases an address before it is used as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
