package program

import "fmt"

// PhaseInfo is the static reference data shown for each 4-week block.
type PhaseInfo struct {
	Phase         Phase    `json:"phase"`
	Title         string   `json:"title"`
	WeekRange     string   `json:"weekRange"`
	Description   string   `json:"description"`
	FocusAreas    []string `json:"focusAreas"`
	ExerciseGoal  string   `json:"exerciseGoal"`
	NutritionGoal string   `json:"nutritionGoal"`
}

var phaseInfos = map[Phase]PhaseInfo{
	Phase1: {
		Phase:         Phase1,
		Title:         "Phase 1: Build the Base",
		WeekRange:     "Weeks 1-4",
		Description:   "Build baseline fitness and establish healthy habits",
		FocusAreas:    []string{"Exercise habit formation", "Calorie control", "Regular meal times"},
		ExerciseGoal:  "5-6 sessions per week, 30-40 minutes a day",
		NutritionGoal: "2,000 kcal daily, fixed meal schedule",
	},
	Phase2: {
		Phase:         Phase2,
		Title:         "Phase 2: Raise the Intensity",
		WeekRange:     "Weeks 5-8",
		Description:   "Increase training intensity and accelerate weight loss",
		FocusAreas:    []string{"Higher training intensity", "Introduce HIIT", "More protein"},
		ExerciseGoal:  "6 sessions per week, 40-50 minutes a day",
		NutritionGoal: "1,800 kcal daily, adjusted carbohydrate ratio",
	},
	Phase3: {
		Phase:         Phase3,
		Title:         "Phase 3: Reach the Goal",
		WeekRange:     "Weeks 9-12",
		Description:   "Hit the target and lock in maintenance habits",
		FocusAreas:    []string{"Strength gains", "Body fat reduction", "Habit automation"},
		ExerciseGoal:  "6 sessions per week, 45-60 minutes a day",
		NutritionGoal: "1,900 kcal daily, optimized nutrient balance",
	},
}

// InfoFor returns the reference data for the phase of the given week.
func InfoFor(week int) PhaseInfo {
	return phaseInfos[PhaseOf(week)]
}

// AllPhaseInfo returns the three phase descriptions in order.
func AllPhaseInfo() []PhaseInfo {
	return []PhaseInfo{phaseInfos[Phase1], phaseInfos[Phase2], phaseInfos[Phase3]}
}

// ExerciseDay is one entry of a week's training schedule.
type ExerciseDay struct {
	Day         string `json:"day"`
	Exercise    string `json:"exercise"`
	Description string `json:"description"`
}

// NutritionDay is one entry of a week's meal guide.
type NutritionDay struct {
	Day       string   `json:"day"`
	Breakfast string   `json:"breakfast"`
	Lunch     string   `json:"lunch"`
	Dinner    string   `json:"dinner"`
	Snacks    []string `json:"snacks,omitempty"`
}

// WeeklyProgram bundles the guidance shown for one week of the program.
type WeeklyProgram struct {
	WeekNumber       int            `json:"weekNumber"`
	Phase            Phase          `json:"phase"`
	ExerciseSchedule []ExerciseDay  `json:"exerciseSchedule"`
	NutritionGuide   []NutritionDay `json:"nutritionGuide"`
	WeeklyGoals      []string       `json:"weeklyGoals"`
}

var baseExerciseSchedule = []ExerciseDay{
	{Day: "Monday", Exercise: "Cardio 30 min + stretching 10 min", Description: "Brisk walking, target heart rate 100-115 bpm"},
	{Day: "Tuesday", Exercise: "Strength 30 min + core 10 min", Description: "Squats, push-ups, planks and lunges, 3 sets each"},
	{Day: "Wednesday", Exercise: "Cardio 40 min", Description: "Brisk walking or cycling"},
	{Day: "Thursday", Exercise: "Strength 30 min + core 10 min", Description: "Repeat Tuesday's routine"},
	{Day: "Friday", Exercise: "Cardio 30 min + stretching 10 min", Description: "Light jogging is fine"},
	{Day: "Saturday", Exercise: "Strength 30 min or active leisure", Description: "Hiking, swimming or another activity you enjoy"},
	{Day: "Sunday", Exercise: "Rest or light 20 min walk", Description: "Full rest or active recovery"},
}

var baseNutritionGuide = []NutritionDay{
	{Day: "Monday", Breakfast: "Brown rice bowl, miso soup, seaweed, spinach, steamed egg", Lunch: "Oat rice, lean pork stir-fry 120g, kimchi, seaweed soup", Dinner: "Brown rice 80g, grilled mackerel, tofu salad", Snacks: []string{"10 cherry tomatoes", "Plain greek yogurt 100g with blueberries"}},
	{Day: "Tuesday", Breakfast: "2 slices whole wheat toast, half an avocado, fried egg", Lunch: "Salmon salad (150g salmon, greens, olive oil), 1 sweet potato", Dinner: "Chicken breast salad bowl 120g, brown rice 80g", Snacks: []string{"Half an apple with 10 almonds", "Carrot sticks with hummus"}},
	{Day: "Wednesday", Breakfast: "Oatmeal 50g with milk, half a banana, 5 walnuts", Lunch: "Brown rice bibimbap, plenty of vegetables, egg", Dinner: "Tofu steak 200g, broccoli, quinoa 80g", Snacks: []string{"Half a pear", "Soy milk 200ml"}},
	{Day: "Thursday", Breakfast: "Brown rice bowl, seaweed soup, rolled omelette", Lunch: "Chicken breast sandwich on whole wheat, side salad", Dinner: "Brown rice 80g, braised white fish, bean sprouts", Snacks: []string{"1 kiwi", "Mixed nuts 30g"}},
	{Day: "Friday", Breakfast: "Whole grain cereal with low-fat milk, 5 strawberries", Lunch: "Brown rice, lean beef radish soup 80g, three vegetable sides", Dinner: "Seafood soft tofu stew, brown rice 80g, kimchi", Snacks: []string{"Celery sticks with peanut butter", "Cherry tomatoes with mozzarella"}},
	{Day: "Saturday", Breakfast: "Sweet potato 200g, 2 boiled eggs, salad", Lunch: "Chicken breast rice bowl with stir-fried vegetables", Dinner: "Grilled salmon 150g, asparagus, quinoa 80g", Snacks: []string{"1 orange", "Protein shake"}},
	{Day: "Sunday (one free meal)", Breakfast: "Brown rice porridge, roasted seaweed, kimchi", Lunch: "Your choice - just no overeating", Dinner: "Vegetable-heavy shabu-shabu, brown rice 80g", Snacks: []string{"Fruit salad", "Mixed nuts"}},
}

// GuideForWeek returns the exercise and nutrition guidance for a week.
// The schedule template is shared across weeks; goals scale with the phase.
func GuideForWeek(week int) (WeeklyProgram, error) {
	if week < 1 || week > Weeks {
		return WeeklyProgram{}, fmt.Errorf("week %d out of range 1-%d", week, Weeks)
	}
	phase := PhaseOf(week)

	exerciseDays := 5
	if phase != Phase1 {
		exerciseDays = 6
	}
	habitGoal := "Make exercise a habit"
	switch phase {
	case Phase2:
		habitGoal = "Push the training intensity up"
	case Phase3:
		habitGoal = "Reach your target weight"
	}

	return WeeklyProgram{
		WeekNumber:       week,
		Phase:            phase,
		ExerciseSchedule: baseExerciseSchedule,
		NutritionGuide:   baseNutritionGuide,
		WeeklyGoals: []string{
			fmt.Sprintf("Week %d goal: complete %d exercise days", week, exerciseDays),
			"Keep meal times regular (breakfast 7am, lunch 12pm, dinner 6pm)",
			"Drink 2L of water a day (8 glasses)",
			habitGoal,
		},
	}, nil
}
