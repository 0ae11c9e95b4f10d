package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

const suggestionDays = 3

// modelPlan is the JSON shape both providers are asked to return.
type modelPlan struct {
	Days []struct {
		Day             int    `json:"day"`
		Title           string `json:"title"`
		StartLocation   string `json:"start_location"`
		EndLocation     string `json:"end_location"`
		TotalDuration   string `json:"total_duration"`
		WalkingDistance string `json:"walking_distance"`
		Activities      []struct {
			Time string `json:"time"`
			ID   string `json:"id"`
		} `json:"activities"`
	} `json:"days"`
}

func buildPlanPrompt(catalog CatalogServiceInterface, dayCount int) string {
	var poiBuf strings.Builder
	for _, it := range catalog.All() {
		if !it.Category.IsCatalog() {
			continue
		}
		fmt.Fprintf(&poiBuf, "- ID:%s | Name:%s | Category:%s | Duration:%s | Price:%.0f\n",
			it.ID, it.Name, it.Category, it.DurationLabel, it.Price)
	}

	return fmt.Sprintf(`
You are scheduling a %d-day trip in Rome. Return **JSON only** matching this schema:
{"days":[{"day":1,"title":"string","start_location":"string","end_location":"string",
"total_duration":"string","walking_distance":"string",
"activities":[{"time":"09:00","id":"<ID from list>"}]}]}

Allowed experiences (use IDs from here only):
%s
Hard constraints:
- Exactly %d days, day = 1..%d.
- 3-6 activities per day, times HH:MM between 08:00 and 22:00, ascending.
- Never repeat an ID across days.

Return JSON only. No comments, no markdown.
`, dayCount, poiBuf.String(), dayCount, dayCount)
}

// planFromModelJSON turns provider output into routes. Unknown ids are
// dropped, repeated ids keep their first occurrence, activities are sorted by
// time.
func planFromModelJSON(raw string, catalog CatalogServiceInterface, dayCount int) ([]dm.DayRoute, error) {
	var mp modelPlan
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &mp); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	if len(mp.Days) != dayCount {
		return nil, fmt.Errorf("%w: expected %d days, got %d", utils.ErrUnexpectedBehaviorOfAI, dayCount, len(mp.Days))
	}

	seen := make(map[string]bool)
	routes := make([]dm.DayRoute, 0, len(mp.Days))
	for i, d := range mp.Days {
		route := dm.DayRoute{
			Day:             i + 1,
			Title:           d.Title,
			StartLocation:   d.StartLocation,
			EndLocation:     d.EndLocation,
			TotalDuration:   d.TotalDuration,
			WalkingDistance: d.WalkingDistance,
		}
		for _, a := range d.Activities {
			if seen[a.ID] {
				continue
			}
			item, err := catalog.Get(a.ID)
			if err != nil || !item.Category.IsCatalog() {
				continue
			}
			if _, ok := utils.ClockMinutes(a.Time); !ok {
				continue
			}
			seen[a.ID] = true
			route.Activities = append(route.Activities, activityFromItem(item, a.Time))
		}
		if len(route.Activities) == 0 {
			return nil, fmt.Errorf("%w: day %d has no usable activities", utils.ErrUnexpectedBehaviorOfAI, i+1)
		}
		route.SortActivities()
		routes = append(routes, route)
	}
	return routes, nil
}

func activityFromItem(item dm.ExperienceItem, clock string) dm.RouteActivity {
	act := dm.RouteActivity{
		Time:          clock,
		Label:         item.Name,
		Emoji:         categoryEmoji(item.Category),
		ID:            item.ID,
		Location:      item.Location,
		DurationLabel: item.DurationLabel,
		Website:       item.Website,
	}
	if item.Price > 0 {
		act.Price = dm.Float(item.Price)
	}
	return act
}

func categoryEmoji(c dm.Category) string {
	switch c {
	case dm.CategoryActivity:
		return "🚶"
	case dm.CategoryScript:
		return "🎭"
	case dm.CategoryService:
		return "💆"
	case dm.CategoryDining:
		return "🍝"
	case dm.CategoryAttraction:
		return "🏛️"
	case dm.CategoryNone, dm.CategoryItinerary:
		return "📍"
	default:
		return "📍"
	}
}

// cleanJSONResponse strips markdown fences some models add despite instructions.
func cleanJSONResponse(response string) string {
	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "{"); start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndex(s, "}"); end >= 0 && end < len(s)-1 {
		s = s[:end+1]
	}
	return s
}

// ---------------- OpenAI ----------------

type OpenAISuggestionGenerator struct {
	client  *openai.Client
	model   string
	catalog CatalogServiceInterface
}

func NewOpenAISuggestionGenerator(apiKey, model string, catalog CatalogServiceInterface) SuggestionGenerator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISuggestionGenerator{
		client:  openai.NewClient(apiKey),
		model:   model,
		catalog: catalog,
	}
}

func (g *OpenAISuggestionGenerator) Generate(ctx context.Context) ([]dm.DayRoute, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a travel planner that answers with JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: buildPlanPrompt(g.catalog, suggestionDays)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", utils.ErrUnexpectedBehaviorOfAI)
	}
	return planFromModelJSON(resp.Choices[0].Message.Content, g.catalog, suggestionDays)
}

func (g *OpenAISuggestionGenerator) Name() string { return "openai" }

// ---------------- Gemini ----------------

type GeminiSuggestionGenerator struct {
	client  *genai.Client
	model   string
	catalog CatalogServiceInterface
}

func NewGeminiSuggestionGenerator(ctx context.Context, apiKey, model string, catalog CatalogServiceInterface) (*GeminiSuggestionGenerator, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiSuggestionGenerator{client: client, model: model, catalog: catalog}, nil
}

func (g *GeminiSuggestionGenerator) Generate(ctx context.Context) ([]dm.DayRoute, error) {
	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetTemperature(0.1)

	resp, err := m.GenerateContent(ctx, genai.Text(buildPlanPrompt(g.catalog, suggestionDays)))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no content", utils.ErrUnexpectedBehaviorOfAI)
	}
	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return planFromModelJSON(content, g.catalog, suggestionDays)
}

func (g *GeminiSuggestionGenerator) Name() string { return "gemini" }

func (g *GeminiSuggestionGenerator) Close() error {
	return g.client.Close()
}
