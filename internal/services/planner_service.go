package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"tripai-backend/internal/config"
	"tripai-backend/internal/dto"
)

const hfInferenceURL = "https://api-inference.huggingface.co/models/"

// PlannerService generates trip itineraries. With an API key configured it
// asks a HuggingFace instruct model; without one, or when the model call
// fails, it falls back to a deterministic generator so the endpoint always
// answers.
type PlannerService struct {
	cfg    config.AIConfig
	client *http.Client
}

func NewPlannerService(cfg config.AIConfig) *PlannerService {
	return &PlannerService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate produces an itinerary for the request. The returned source is
// "ai" or "fallback".
func (s *PlannerService) Generate(ctx context.Context, req *dto.GeneratePlanRequest) (*dto.GeneratedPlan, string, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, "", fmt.Errorf("%w: destination is required", ErrValidation)
	}
	days := req.Days
	if days <= 0 {
		days = 3
	}
	if days > 14 {
		days = 14
	}

	if s.cfg.APIKey != "" {
		plan, err := s.generateWithModel(ctx, destination, days, req)
		if err == nil {
			return plan, "ai", nil
		}
		log.Warn().Err(err).Str("destination", destination).Msg("model generation failed, using fallback planner")
	}

	return s.generateFallback(destination, days, req), "fallback", nil
}

func (s *PlannerService) generateWithModel(ctx context.Context, destination string, days int, req *dto.GeneratePlanRequest) (*dto.GeneratedPlan, error) {
	prompt := buildPrompt(destination, days, req)
	payload, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   1024,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, hfInferenceURL+s.cfg.Model, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("model %s is loading", s.cfg.Model)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []hfResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		return nil, fmt.Errorf("inference API returned no text")
	}

	plan, err := parsePlanJSON(results[0].GeneratedText)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func buildPrompt(destination string, days int, req *dto.GeneratePlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[INST] You are a travel planner. Create a %d-day itinerary for %s", days, destination)
	if req.Travelers > 1 {
		fmt.Fprintf(&b, " for %d travelers", req.Travelers)
	}
	if req.Budget != "" {
		fmt.Fprintf(&b, " on a %s budget", req.Budget)
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, ", focused on %s", strings.Join(req.Interests, ", "))
	}
	b.WriteString(`. Respond with only JSON in this shape: {"tripTitle": string, "summary": string, "itinerary": [{"day": number, "title": string, "activities": [string], "meals": [string]}]} [/INST]`)
	return b.String()
}

// parsePlanJSON extracts the first JSON object from model output, which
// often wraps it in prose or code fences.
func parsePlanJSON(text string) (*dto.GeneratedPlan, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	var plan dto.GeneratedPlan
	if err := json.Unmarshal([]byte(text[start:end+1]), &plan); err != nil {
		return nil, fmt.Errorf("model output is not a valid plan: %w", err)
	}
	if plan.TripTitle == "" || len(plan.Itinerary) == 0 {
		return nil, fmt.Errorf("model output is missing tripTitle or itinerary")
	}
	return &plan, nil
}

// interestActivities maps a traveler interest to activities woven into the
// fallback itinerary.
var interestActivities = map[string][]string{
	"beaches":   {"Morning beach walk", "Sunbathing and swimming", "Beachside sunset watching"},
	"food":      {"Street food tour", "Cooking class with a local chef", "Dinner at a top-rated restaurant"},
	"culture":   {"Museum and heritage walk", "Local market visit", "Traditional performance in the evening"},
	"adventure": {"Guided trek", "Water sports session", "Zipline or paragliding"},
	"nightlife": {"Rooftop bar hopping", "Live music venue", "Night market stroll"},
	"nature":    {"National park visit", "Botanical garden walk", "Scenic viewpoint hike"},
	"shopping":  {"Local bazaar shopping", "Artisan craft stores", "Mall and boutique visit"},
	"history":   {"Fort and palace tour", "Old town walking tour", "Guided history walk"},
}

var defaultActivities = []string{
	"City orientation walk",
	"Visit the top-rated local attraction",
	"Relax at a local cafe",
	"Explore a neighborhood off the tourist path",
	"Photo stop at the main landmark",
	"Evening stroll through the old quarter",
}

// generateFallback builds a deterministic itinerary from the interest map.
// The same request always yields the same plan.
func (s *PlannerService) generateFallback(destination string, days int, req *dto.GeneratePlanRequest) *dto.GeneratedPlan {
	var pool []string
	for _, interest := range req.Interests {
		if acts, ok := interestActivities[strings.ToLower(strings.TrimSpace(interest))]; ok {
			pool = append(pool, acts...)
		}
	}
	if len(pool) == 0 {
		pool = defaultActivities
	}

	itinerary := make([]dto.PlanDay, 0, days)
	for day := 1; day <= days; day++ {
		var title string
		var activities []string
		switch day {
		case 1:
			title = "Arrival & First Impressions"
			activities = []string{"Arrive and check in", "Walk around the neighborhood", pool[0]}
		case days:
			title = "Farewell " + destination
			activities = []string{"Breakfast at leisure", "Last-minute souvenir shopping", "Departure"}
		default:
			title = fmt.Sprintf("Discover %s, Day %d", destination, day)
			a1 := pool[(day*2)%len(pool)]
			a2 := pool[(day*2+1)%len(pool)]
			activities = []string{a1, a2, "Free evening to explore"}
		}
		itinerary = append(itinerary, dto.PlanDay{
			Day:        day,
			Title:      title,
			Activities: activities,
			Meals:      []string{"Breakfast", "Dinner"},
		})
	}

	summary := fmt.Sprintf("A %d-day trip to %s", days, destination)
	if len(req.Interests) > 0 {
		summary += " built around " + strings.Join(req.Interests, ", ")
	}
	summary += "."

	return &dto.GeneratedPlan{
		TripTitle: fmt.Sprintf("%d Days in %s", days, destination),
		Summary:   summary,
		Itinerary: itinerary,
	}
}
