package check

// ChecklistItem is one named completion criterion for a day.
type ChecklistItem struct {
	Name string
	Met  func(*DailyCheck) bool
}

// Checklist is the set of criteria a day is scored against. The membership
// is configuration: the daily metric changed shape across app versions, so
// callers pick the list instead of the engine hard-coding one.
type Checklist []ChecklistItem

// FullChecklist is the nine-item scoring used by current clients.
var FullChecklist = Checklist{
	{Name: "breakfast", Met: func(c *DailyCheck) bool { return c.BreakfastCompleted }},
	{Name: "lunch", Met: func(c *DailyCheck) bool { return c.LunchCompleted }},
	{Name: "dinner", Met: func(c *DailyCheck) bool { return c.DinnerCompleted }},
	{Name: "water", Met: func(c *DailyCheck) bool { return c.WaterIntake >= WaterGoal }},
	{Name: "exercise", Met: func(c *DailyCheck) bool { return c.ExerciseCompleted }},
	{Name: "sleep", Met: func(c *DailyCheck) bool { return c.SleepHours != nil }},
	{Name: "weight", Met: func(c *DailyCheck) bool { return c.Weight != nil }},
	{Name: "waist", Met: func(c *DailyCheck) bool { return c.Waist != nil }},
	{Name: "condition", Met: func(c *DailyCheck) bool { return c.Condition != nil }},
}

// LegacyChecklist is the original two-item scoring: diet (all three meals)
// and exercise.
var LegacyChecklist = Checklist{
	{Name: "diet", Met: func(c *DailyCheck) bool {
		return c.BreakfastCompleted && c.LunchCompleted && c.DinnerCompleted
	}},
	{Name: "exercise", Met: func(c *DailyCheck) bool { return c.ExerciseCompleted }},
}

// Score returns the percentage of checklist items the record satisfies,
// always in [0,100]. Scoring is a pure function of the record's fields.
func (cl Checklist) Score(c *DailyCheck) float64 {
	if c == nil || len(cl) == 0 {
		return 0
	}
	met := 0
	for _, item := range cl {
		if item.Met(c) {
			met++
		}
	}
	score := float64(met) / float64(len(cl)) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Complete reports whether every checklist item is satisfied.
func (cl Checklist) Complete(c *DailyCheck) bool {
	if c == nil || len(cl) == 0 {
		return false
	}
	for _, item := range cl {
		if !item.Met(c) {
			return false
		}
	}
	return true
}
