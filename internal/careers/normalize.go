package careers

// Normalize coerces a recommendation into its canonical shape: every
// sequence is non-nil so callers and stored history never see a partial object.
func Normalize(r Recommendation) Recommendation {
	out := Recommendation{
		CareerPaths: make([]CareerPath, 0, len(r.CareerPaths)),
		SkillGaps:   nonNil(r.SkillGaps),
		ActionPlan: ActionPlan{
			ShortTerm: nonNil(r.ActionPlan.ShortTerm),
			MidTerm:   nonNil(r.ActionPlan.MidTerm),
			LongTerm:  nonNil(r.ActionPlan.LongTerm),
		},
	}
	for _, p := range r.CareerPaths {
		p.RequiredSkills = nonNil(p.RequiredSkills)
		if p.LearningResources == nil {
			p.LearningResources = []LearningResource{}
		}
		out.CareerPaths = append(out.CareerPaths, p)
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
