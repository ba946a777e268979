package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripai-backend/internal/config"
	"tripai-backend/internal/dto"
)

func testPlanner() *PlannerService {
	// No API key, so every request takes the fallback path.
	return NewPlannerService(config.AIConfig{Timeout: time.Second})
}

func TestPlannerGenerate_Fallback(t *testing.T) {
	svc := testPlanner()

	plan, source, err := svc.Generate(context.Background(), &dto.GeneratePlanRequest{
		Destination: "Goa",
		Days:        4,
		Interests:   []string{"beaches", "food"},
	})
	require.NoError(t, err)
	assert.Equal(t, "fallback", source)
	assert.Equal(t, "4 Days in Goa", plan.TripTitle)
	require.Len(t, plan.Itinerary, 4)
	assert.Equal(t, 1, plan.Itinerary[0].Day)
	assert.Equal(t, "Farewell Goa", plan.Itinerary[3].Title)
	for _, day := range plan.Itinerary {
		assert.NotEmpty(t, day.Activities)
	}
}

func TestPlannerGenerate_Deterministic(t *testing.T) {
	svc := testPlanner()
	req := &dto.GeneratePlanRequest{Destination: "Manali", Days: 5, Interests: []string{"adventure"}}

	first, _, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	second, _, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlannerGenerate_Defaults(t *testing.T) {
	svc := testPlanner()

	plan, _, err := svc.Generate(context.Background(), &dto.GeneratePlanRequest{Destination: "Jaipur"})
	require.NoError(t, err)
	assert.Len(t, plan.Itinerary, 3)

	long, _, err := svc.Generate(context.Background(), &dto.GeneratePlanRequest{Destination: "Jaipur", Days: 90})
	require.NoError(t, err)
	assert.Len(t, long.Itinerary, 14)
}

func TestPlannerGenerate_RequiresDestination(t *testing.T) {
	svc := testPlanner()
	_, _, err := svc.Generate(context.Background(), &dto.GeneratePlanRequest{Days: 3})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParsePlanJSON(t *testing.T) {
	raw := "Here is your plan:\n```json\n" +
		`{"tripTitle":"3 Days in Goa","summary":"Beach trip","itinerary":[{"day":1,"title":"Arrival","activities":["Check in"]}]}` +
		"\n```"
	plan, err := parsePlanJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "3 Days in Goa", plan.TripTitle)
	require.Len(t, plan.Itinerary, 1)

	_, err = parsePlanJSON("no json here")
	assert.Error(t, err)
	_, err = parsePlanJSON(`{"summary":"missing title and days"}`)
	assert.Error(t, err)
}
