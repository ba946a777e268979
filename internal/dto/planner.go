package dto

// GeneratePlanRequest is the payload for POST /api/planner/generate.
type GeneratePlanRequest struct {
	Destination string   `json:"destination" example:"Goa"`
	Days        int      `json:"days" example:"3"`
	Budget      string   `json:"budget,omitempty" example:"moderate"`
	Travelers   int      `json:"travelers,omitempty" example:"2"`
	Interests   []string `json:"interests,omitempty" example:"beaches,food"`
}

// PlanDay is one day of a generated itinerary.
type PlanDay struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
	Meals      []string `json:"meals,omitempty"`
}

// GeneratedPlan is the itinerary produced by the planner.
type GeneratedPlan struct {
	TripTitle string    `json:"tripTitle"`
	Summary   string    `json:"summary"`
	Itinerary []PlanDay `json:"itinerary"`
}

// PlanResponse wraps a generated plan.
type PlanResponse struct {
	Success bool           `json:"success"`
	Source  string         `json:"source"`
	Data    *GeneratedPlan `json:"data"`
}
