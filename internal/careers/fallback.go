package careers

import (
	"fmt"
	"slices"
	"strings"
)

const maxSkillGaps = 5

type category struct {
	name         string
	keywords     []string
	goalKeywords []string
	minScore     int
	build        func(in Input, matched []string) CareerPath
}

var categories = []category{
	{
		name:         "technical",
		keywords:     []string{"javascript", "python", "programming", "coding", "web development", "software", "react", "node", "html", "css"},
		goalKeywords: []string{"developer", "programmer"},
		minScore:     7,
		build:        technicalPath,
	},
	{
		name:         "design",
		keywords:     []string{"design", "ui", "ux", "photoshop", "figma", "creative", "art", "visual"},
		goalKeywords: []string{"design"},
		minScore:     6,
		build:        designPath,
	},
	{
		name:         "business",
		keywords:     []string{"management", "business", "marketing", "sales", "leadership", "communication"},
		goalKeywords: []string{"manager", "business"},
		minScore:     6,
		build:        businessPath,
	},
}

var (
	genericRequiredSkills = []string{"Communication", "Problem Solving", "Learning Agility"}
	defaultSkillGaps      = []string{"Industry Knowledge", "Advanced Technical Skills", "Professional Communication"}
)

// Generate builds a recommendation from keyword heuristics alone. It never
// fails and always returns at least one career path and a 3/3/3 action plan.
func Generate(in Input) Recommendation {
	goal := strings.ToLower(in.CareerGoal)

	paths := make([]CareerPath, 0, len(categories))
	for _, cat := range categories {
		matched := matchSkills(in.Skills, cat.keywords)
		if len(matched) == 0 && !containsAny(goal, cat.goalKeywords) {
			continue
		}
		path := cat.build(in, matched)
		path.MatchScore = matchScore(cat.minScore, len(matched))
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		paths = append(paths, genericPath(in))
	}

	gaps := skillGaps(paths, in.Skills)
	plan := actionPlan(gaps, goal)
	if len(gaps) == 0 {
		gaps = append([]string(nil), defaultSkillGaps...)
	}

	return Recommendation{
		CareerPaths: paths,
		SkillGaps:   gaps,
		ActionPlan:  plan,
	}
}

func matchSkills(skills, keywords []string) []string {
	var out []string
	for _, skill := range skills {
		if containsAny(strings.ToLower(skill), keywords) {
			out = append(out, skill)
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// matchScore rewards up to three matched skills; below that the score drops
// one point per missing skill, never under floor.
func matchScore(floor, matched int) string {
	score := 10 - max(0, 3-matched)
	score = max(floor, score)
	return fmt.Sprintf("%d/10", score)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func withTriad(matched []string, triad ...string) []string {
	out := make([]string, 0, len(matched)+len(triad))
	out = append(out, matched...)
	return append(out, triad...)
}

func technicalPath(in Input, matched []string) CareerPath {
	// title prefixes and the JavaScript course match case-sensitively
	prefix := "Software"
	switch {
	case strings.Contains(in.CareerGoal, "Full Stack"):
		prefix = "Full Stack"
	case strings.Contains(in.CareerGoal, "Frontend"):
		prefix = "Frontend"
	case strings.Contains(in.CareerGoal, "Backend"):
		prefix = "Backend"
	}
	domain := "software"
	if strings.Contains(strings.ToLower(in.CareerGoal), "web") {
		domain = "web"
	}
	fundamentals := "Programming"
	if slices.Contains(matched, "JavaScript") {
		fundamentals = "Advanced JavaScript"
	}
	return CareerPath{
		Title:            prefix + " Developer",
		Description:      fmt.Sprintf("Build %s applications using your %s skills.", domain, joinOr(matched, "programming")),
		RequiredSkills:   withTriad(matched, "Problem Solving", "Debugging", "Version Control"),
		GrowthProjection: "High demand with 22% growth expected in tech sector",
		LearningResources: []LearningResource{
			{Name: "FreeCodeCamp", Type: "course", Link: "https://freecodecamp.org"},
			{Name: fundamentals + " Fundamentals", Type: "course", Link: "https://codecademy.com"},
			{Name: "Clean Code", Type: "book", Link: "https://amazon.com"},
		},
	}
}

func designPath(in Input, matched []string) CareerPath {
	goal := strings.ToLower(in.CareerGoal)
	title := "UX/UI Designer"
	switch {
	case strings.Contains(goal, "ui"):
		title = "UI Designer"
	case strings.Contains(goal, "ux"):
		title = "UX Designer"
	}
	medium := "digital"
	if strings.Contains(goal, "web") {
		medium = "web"
	}
	return CareerPath{
		Title:            title,
		Description:      fmt.Sprintf("Create user-friendly %s interfaces and experiences using your %s skills.", medium, joinOr(matched, "design")),
		RequiredSkills:   withTriad(matched, "User Research", "Prototyping", "Design Thinking"),
		GrowthProjection: "Steady growth in digital products and user experience",
		LearningResources: []LearningResource{
			{Name: "Figma Academy", Type: "course", Link: "https://figma.com"},
			{Name: "Design of Everyday Things", Type: "book", Link: "https://amazon.com"},
		},
	}
}

func businessPath(in Input, matched []string) CareerPath {
	goal := strings.ToLower(in.CareerGoal)
	title := "Business Analyst"
	focus := "business initiatives"
	switch {
	case strings.Contains(goal, "product"):
		title = "Product Manager"
		focus = "product development"
	case strings.Contains(goal, "project"):
		title = "Project Manager"
	}
	return CareerPath{
		Title:            title,
		Description:      fmt.Sprintf("Lead %s using your %s skills.", focus, joinOr(matched, "business")),
		RequiredSkills:   withTriad(matched, "Strategic Thinking", "Data Analysis", "Stakeholder Management"),
		GrowthProjection: "Growing demand for business-tech hybrid roles",
		LearningResources: []LearningResource{
			{Name: "Product Management Course", Type: "course", Link: "https://coursera.org"},
			{Name: "Lean Startup", Type: "book", Link: "https://amazon.com"},
		},
	}
}

func genericPath(in Input) CareerPath {
	title := in.CareerGoal
	if strings.TrimSpace(title) == "" {
		title = "Technology Professional"
	}
	field := strings.ToLower(in.CareerGoal)
	if strings.TrimSpace(field) == "" {
		field = "technology"
	}
	required := append([]string(nil), genericRequiredSkills...)
	if len(in.Skills) > 0 {
		required = append([]string(nil), in.Skills...)
	}
	return CareerPath{
		Title:            title,
		MatchScore:       "7/10",
		Description:      fmt.Sprintf("Pursue a career in %s by developing relevant skills and experience.", field),
		RequiredSkills:   required,
		GrowthProjection: "Good growth potential with skill development",
		LearningResources: []LearningResource{
			{Name: "Coursera", Type: "platform", Link: "https://coursera.org"},
			{Name: "LinkedIn Learning", Type: "platform", Link: "https://linkedin.com/learning"},
		},
	}
}

// skillGaps returns required skills the user does not already cover, in order
// of first appearance across paths.
func skillGaps(paths []CareerPath, skills []string) []string {
	owned := make([]string, 0, len(skills))
	for _, s := range skills {
		owned = append(owned, strings.ToLower(s))
	}
	seen := make(map[string]struct{})
	var gaps []string
	for _, path := range paths {
		for _, req := range path.RequiredSkills {
			key := strings.ToLower(strings.TrimSpace(req))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if coveredBy(owned, key) {
				continue
			}
			gaps = append(gaps, req)
			if len(gaps) == maxSkillGaps {
				return gaps
			}
		}
	}
	return gaps
}

func coveredBy(owned []string, skill string) bool {
	for _, o := range owned {
		if strings.Contains(o, skill) {
			return true
		}
	}
	return false
}

func actionPlan(gaps []string, goal string) ActionPlan {
	first := "fundamental skills"
	second := "advanced topics"
	if len(gaps) > 0 {
		first = gaps[0]
	}
	if len(gaps) > 1 {
		second = gaps[1]
	}
	field := goal
	if field == "" {
		field = "your target field"
	}
	positions := goal
	if positions == "" {
		positions = "relevant"
	}
	specialty := "advanced technical skills"
	if strings.Contains(goal, "senior") {
		specialty = "leadership"
	}
	return ActionPlan{
		ShortTerm: []string{
			fmt.Sprintf("Learn %s through online courses", first),
			fmt.Sprintf("Build 2-3 projects related to %s", field),
			"Update resume and LinkedIn profile",
		},
		MidTerm: []string{
			fmt.Sprintf("Apply for %s positions", positions),
			"Network with professionals in your target industry",
			fmt.Sprintf("Gain experience in %s", second),
		},
		LongTerm: []string{
			fmt.Sprintf("Specialize in %s", specialty),
			"Mentor others and contribute to the community",
			"Consider advanced certifications or education",
		},
	}
}
