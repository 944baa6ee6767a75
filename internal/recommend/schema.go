package recommend

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Missing sections are tolerated and filled by careers.Normalize; present
// sections must carry the right types and at least one career path must exist.
// Every path carries a score of the form "N/10" with N in 1..10.
const recommendationSchema = `{
  "type": "object",
  "required": ["career_paths"],
  "properties": {
    "career_paths": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title", "match_score"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "match_score": {"type": "string", "pattern": "^([1-9]|10)/10$"},
          "description": {"type": "string"},
          "required_skills": {"type": "array", "items": {"type": "string"}},
          "growth_projection": {"type": "string"},
          "learning_resources": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "link": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "skill_gaps": {"type": "array", "items": {"type": "string"}},
    "action_plan": {
      "type": "object",
      "properties": {
        "short_term": {"type": "array", "items": {"type": "string"}},
        "mid_term": {"type": "array", "items": {"type": "string"}},
        "long_term": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recommendationSchema))
	})
	return schema, schemaErr
}

func validateShape(raw string) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load recommendation schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		issues = append(issues, field+": "+desc.Description())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(issues, "; "))
}
