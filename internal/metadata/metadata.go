// Package metadata declares the document metadata contract and its schema
// descriptors.
package metadata

import "github.com/aipengineer/quackmetadata/internal/schema"

// AuthorProfile is a generated profile of the likely author, inferred from
// the document content.
type AuthorProfile struct {
	Name             string `json:"name"`
	Profession       string `json:"profession"`
	WritingStyle     string `json:"writing_style"`
	PossibleAgeRange string `json:"possible_age_range"`
	LocationGuess    string `json:"location_guess"`
}

// Metadata is the validated payload extracted from a document.
// EstimatedDate is the only optional field; it stays nil when the model
// cannot detect a date.
type Metadata struct {
	Title         string        `json:"title"`
	Summary       string        `json:"summary"`
	AuthorStyle   string        `json:"author_style"`
	Tone          string        `json:"tone"`
	Language      string        `json:"language"`
	Domain        string        `json:"domain"`
	EstimatedDate *string       `json:"estimated_date"`
	Rarity        string        `json:"rarity"`
	AuthorProfile AuthorProfile `json:"author_profile"`
}

// Fields returns the schema descriptors a payload must satisfy before it
// can be promoted to Metadata.
func Fields() []schema.Field {
	return []schema.Field{
		{Name: "title", Type: schema.TypeString, Required: true},
		{Name: "summary", Type: schema.TypeString, Required: true},
		{Name: "author_style", Type: schema.TypeString, Required: true},
		{Name: "tone", Type: schema.TypeString, Required: true},
		{Name: "language", Type: schema.TypeString, Required: true},
		{Name: "domain", Type: schema.TypeString, Required: true},
		{Name: "estimated_date", Type: schema.TypeString},
		{Name: "rarity", Type: schema.TypeString, Required: true, Enum: Rarities()},
		{Name: "author_profile", Type: schema.TypeObject, Required: true, Nested: []schema.Field{
			{Name: "name", Type: schema.TypeString, Required: true},
			{Name: "profession", Type: schema.TypeString, Required: true},
			{Name: "writing_style", Type: schema.TypeString, Required: true},
			{Name: "possible_age_range", Type: schema.TypeString, Required: true},
			{Name: "location_guess", Type: schema.TypeString, Required: true},
		}},
	}
}

// FromPayload builds Metadata from a payload that already passed
// validation against Fields(). It must not be called with an unvalidated
// payload.
func FromPayload(p map[string]any) Metadata {
	md := Metadata{
		Title:       str(p, "title"),
		Summary:     str(p, "summary"),
		AuthorStyle: str(p, "author_style"),
		Tone:        str(p, "tone"),
		Language:    str(p, "language"),
		Domain:      str(p, "domain"),
		Rarity:      str(p, "rarity"),
	}
	if s, ok := p["estimated_date"].(string); ok && s != "" {
		md.EstimatedDate = &s
	}
	if profile, ok := p["author_profile"].(map[string]any); ok {
		md.AuthorProfile = AuthorProfile{
			Name:             str(profile, "name"),
			Profession:       str(profile, "profession"),
			WritingStyle:     str(profile, "writing_style"),
			PossibleAgeRange: str(profile, "possible_age_range"),
			LocationGuess:    str(profile, "location_guess"),
		}
	}
	return md
}

func str(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return s
}
