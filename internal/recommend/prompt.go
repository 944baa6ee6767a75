package recommend

import (
	_ "embed"
	"strings"

	"career-backend/internal/careers"
)

//go:embed prompts/career_v1.txt
var promptV1 string

// BuildPrompt renders the career prompt shared by every provider.
func BuildPrompt(in careers.Input) string {
	replacer := strings.NewReplacer(
		"{{SKILLS}}", strings.Join(in.Skills, ", "),
		"{{HOBBIES}}", strings.Join(in.Hobbies, ", "),
		"{{CAREER_GOAL}}", in.CareerGoal,
	)
	return replacer.Replace(promptV1)
}
