package careers

// Input is the profile data a recommendation is generated from.
type Input struct {
	Skills     []string
	Hobbies    []string
	CareerGoal string
}

// Recommendation is one generated guide appended to a user's history.
type Recommendation struct {
	CareerPaths []CareerPath `json:"career_paths"`
	SkillGaps   []string     `json:"skill_gaps"`
	ActionPlan  ActionPlan   `json:"action_plan"`
}

// CareerPath is a single candidate career suggestion.
type CareerPath struct {
	Title             string             `json:"title"`
	MatchScore        string             `json:"match_score"`
	Description       string             `json:"description"`
	RequiredSkills    []string           `json:"required_skills"`
	GrowthProjection  string             `json:"growth_projection"`
	LearningResources []LearningResource `json:"learning_resources"`
}

// LearningResource points at a course, book, certification or platform.
type LearningResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Link string `json:"link"`
}

// ActionPlan groups next steps by horizon.
type ActionPlan struct {
	ShortTerm []string `json:"short_term"`
	MidTerm   []string `json:"mid_term"`
	LongTerm  []string `json:"long_term"`
}
