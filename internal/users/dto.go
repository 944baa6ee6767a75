package users

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProfileRequest is the JSON body accepted by the user and recommendation endpoints.
type ProfileRequest struct {
	Name       string   `json:"name" binding:"required,max=50"`
	Email      string   `json:"email" binding:"required,email"`
	Skills     []string `json:"skills" binding:"required"`
	Hobbies    []string `json:"hobbies" binding:"required"`
	CareerGoal string   `json:"careerGoal" binding:"required"`
}

// UnmarshalJSON trims the email so the binding check sees the value that gets stored.
func (r *ProfileRequest) UnmarshalJSON(data []byte) error {
	type plain ProfileRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	p.Email = strings.TrimSpace(p.Email)
	*r = ProfileRequest(p)
	return nil
}

// Profile converts the request into a Profile.
func (r ProfileRequest) Profile() Profile {
	return Profile{
		Name:       strings.TrimSpace(r.Name),
		Email:      NormalizeEmail(r.Email),
		Skills:     r.Skills,
		Hobbies:    r.Hobbies,
		CareerGoal: strings.TrimSpace(r.CareerGoal),
	}
}

// ValidationDetails turns binding errors into field/issue pairs for the error envelope.
func ValidationDetails(err error) []map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []map[string]string{{"field": "body", "issue": "invalid_json"}}
	}
	out := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, map[string]string{
			"field": jsonFieldName(fe.Field()),
			"issue": fe.Tag(),
		})
	}
	return out
}

func jsonFieldName(field string) string {
	switch field {
	case "CareerGoal":
		return "careerGoal"
	default:
		return strings.ToLower(field)
	}
}
