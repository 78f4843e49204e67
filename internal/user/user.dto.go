package user

type CreateUserRequest struct {
	ClerkID   string `json:"clerkId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=30"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// StartProgramRequest enrolls a user into the 12-week program with their
// baseline and target measurements.
type StartProgramRequest struct {
	StartDate     string  `json:"startDate" validate:"required"`
	InitialWeight float64 `json:"initialWeight" validate:"required,gt=0"`
	TargetWeight  float64 `json:"targetWeight" validate:"required,gt=0"`
	InitialWaist  float64 `json:"initialWaist" validate:"required,gt=0"`
	TargetWaist   float64 `json:"targetWaist" validate:"required,gt=0"`
}

// ProgramStatusResponse is the dashboard header: where the user is in the
// program right now.
type ProgramStatusResponse struct {
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	CurrentWeek     int    `json:"currentWeek"`
	Phase           int    `json:"phase"`
	PhaseTitle      string `json:"phaseTitle"`
	ProgressPercent int    `json:"progressPercent"`
	RemainingDays   int    `json:"remainingDays"`
}
