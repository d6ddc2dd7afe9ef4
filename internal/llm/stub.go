package llm

import "context"

// StubClient returns a fixed, schema-shaped response without any network
// calls. Useful for development when no API key is configured; callers
// should warn that results are simulated.
type StubClient struct{}

const stubResponse = `{
  "title": "Simulated Document",
  "summary": "This metadata was produced by the stub LLM client and does not reflect real analysis.",
  "author_style": "neutral",
  "tone": "informative",
  "language": "English",
  "domain": "general",
  "estimated_date": null,
  "rarity": "🟢 Common",
  "author_profile": {
    "name": "Unknown Author",
    "profession": "writer",
    "writing_style": "plain",
    "possible_age_range": "unknown",
    "location_guess": "unknown"
  }
}`

func (StubClient) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return stubResponse, nil
}
