package whiteboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Analyzer reads whiteboard photos with Gemini and returns structured
// scores.
type Analyzer struct {
	client *genai.Client
	model  string
}

func NewAnalyzer(ctx context.Context, apiKey, model string) (*Analyzer, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Analyzer{client: client, model: model}, nil
}

const analyzePrompt = `This is a photo of a CrossFit gym whiteboard with workout results.
Return **JSON only** matching this schema exactly:

{
  "workout_title": "string",
  "entries": [
    {"athlete": "name as written", "movement": "movement if named", "score": 123.5, "unit": "kg|reps|seconds", "rx": true}
  ]
}

Rules:
- One entry per athlete line you can read. Skip illegible lines.
- Times become seconds, weights stay in the unit written.
- "rx" is true unless the line is marked scaled.

Return JSON only. No comments, no markdown.`

// Analyze sends the image to Gemini and decodes its reading.
func (a *Analyzer) Analyze(ctx context.Context, imageFormat string, imageData []byte) (*ScanResult, error) {
	m := a.client.GenerativeModel(a.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)

	resp, err := m.GenerateContent(ctx,
		genai.ImageData(imageFormat, imageData),
		genai.Text(analyzePrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	var result ScanResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode scan result: %w", err)
	}
	return &result, nil
}

func (a *Analyzer) Close() error {
	return a.client.Close()
}
