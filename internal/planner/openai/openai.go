package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"fintrack/internal/planner"
)

const requestTimeout = 2 * time.Minute

const systemPrompt = `Return only minified JSON in one line. No comments. No markdown.

You are a personal finance assistant. Given income, spending by category,
budget consumption, and savings goals for a period, produce a budget plan
that allocates money across categories and calls out risks.

CRITICAL RULES:
- All amounts are integer cents.
- Category "type" MUST be one of: "mandatory", "optional", "savings".
- Item "priority" MUST be one of: "high", "medium", "low".
- Note "type" MUST be one of: "warning", "advice", "info".
- Do not invent income or goals that are not in the input.

OUTPUT JSON SCHEMA:
{"title":string,"categories":[{"title":string,"type":string,"items":[{"title":string,"amount_cents":number,"priority":string}]}],"notes":[{"content":string,"type":string}]}`

// Adapter talks to an OpenAI-compatible chat completion endpoint.
// With BaseURL pointed at a local server (Ollama, llama.cpp) no cloud
// account is needed.
type Adapter struct {
	client *goopenai.Client
	model  string
	logger *slog.Logger
}

func NewAdapter(apiKey, baseURL, model string, logger *slog.Logger) *Adapter {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Adapter{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

func (a *Adapter) GeneratePlan(ctx context.Context, req planner.PlanRequest) (*planner.Plan, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, planner.ErrEmptyPlan
	}

	raw := resp.Choices[0].Message.Content
	a.logger.DebugContext(ctx, "Planner raw response", "model", resp.Model, "length", len(raw))

	plan, err := parsePlan(raw)
	if err != nil {
		a.logger.WarnContext(ctx, "Failed to parse plan from model output", "error", err)
		return nil, err
	}
	return plan, nil
}

// parsePlan extracts the plan JSON from model output. Models wrap answers
// in markdown fences or prose often enough that the raw content cannot be
// unmarshalled directly.
func parsePlan(raw string) (*planner.Plan, error) {
	body := extractJSON(raw)
	if body == "" {
		return nil, fmt.Errorf("no JSON object in model output: %w", planner.ErrEmptyPlan)
	}

	var plan planner.Plan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	if plan.Title == "" && len(plan.Categories) == 0 {
		return nil, planner.ErrEmptyPlan
	}
	return &plan, nil
}

func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}
