package user

import "time"

type User struct {
	ID            string    `json:"id" firestore:"id"`
	ClerkID       string    `json:"clerkId" firestore:"clerkId"`
	Email         string    `json:"email" firestore:"email"`
	Username      string    `json:"username" firestore:"username"`
	FirstName     string    `json:"firstName" firestore:"firstName"`
	LastName      string    `json:"lastName" firestore:"lastName"`
	ImageURL      string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	EmailVerified bool      `json:"emailVerified" firestore:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt"`

	// Program enrollment. StartDate is the YYYY-MM-DD anchor of the 12-week
	// program and is immutable once set.
	StartDate     string   `json:"startDate,omitempty" firestore:"startDate,omitempty"`
	InitialWeight *float64 `json:"initialWeight,omitempty" firestore:"initialWeight,omitempty"`
	TargetWeight  *float64 `json:"targetWeight,omitempty" firestore:"targetWeight,omitempty"`
	InitialWaist  *float64 `json:"initialWaist,omitempty" firestore:"initialWaist,omitempty"`
	TargetWaist   *float64 `json:"targetWaist,omitempty" firestore:"targetWaist,omitempty"`
}

// Enrolled reports whether the user has started a program.
func (u *User) Enrolled() bool {
	return u.StartDate != ""
}
