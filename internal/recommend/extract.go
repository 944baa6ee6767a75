package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"career-backend/internal/careers"
)

var (
	// ErrNoJSON means the provider text contained no brace-delimited object.
	ErrNoJSON = errors.New("no JSON object in provider response")
	// ErrSchema means the extracted object does not have the recommendation shape.
	ErrSchema = errors.New("provider response does not match recommendation schema")
)

// ExtractJSON returns the substring from the first '{' to the last '}'.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

// ParseRecommendation extracts, shape-checks and decodes provider text.
func ParseRecommendation(text string) (careers.Recommendation, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return careers.Recommendation{}, err
	}
	if !json.Valid([]byte(raw)) {
		return careers.Recommendation{}, fmt.Errorf("parse provider JSON: invalid syntax")
	}
	if err := validateShape(raw); err != nil {
		return careers.Recommendation{}, err
	}
	var rec careers.Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return careers.Recommendation{}, fmt.Errorf("decode provider JSON: %w", err)
	}
	return rec, nil
}
