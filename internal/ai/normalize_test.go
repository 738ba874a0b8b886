package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name                string
		raw                 string
		expectedDescription string
		expectedEmotions    string
		expectedTags        []string
	}{
		{
			name:                "strict json reply",
			raw:                 `{"description": "A dog on a beach", "emotions": "joyful", "tags": ["dog", "beach", "sand"]}`,
			expectedDescription: "A dog on a beach",
			expectedEmotions:    "joyful",
			expectedTags:        []string{"dog", "beach", "sand"},
		},
		{
			name: "json wrapped in code fence",
			raw: "```json\n" +
				`{"description": "City at night", "emotions": "calm", "tags": ["city", "night"]}` +
				"\n```",
			expectedDescription: "City at night",
			expectedEmotions:    "calm",
			expectedTags:        []string{"city", "night"},
		},
		{
			name:                "malformed reply with labeled fields",
			raw:                 "Here is my analysis.\nDescription: \"A mountain lake\"\nEmotions: \"serene\"\nTags: [\"mountain\", \"lake\", \"\", \" nature \"]",
			expectedDescription: "A mountain lake",
			expectedEmotions:    "serene",
			expectedTags:        []string{"mountain", "lake", "nature"},
		},
		{
			name:                "malformed reply with unquoted values",
			raw:                 "description: a red bicycle leaning on a wall\nemotions: nostalgic\ntags: [bicycle, wall, red]",
			expectedDescription: "a red bicycle leaning on a wall",
			expectedEmotions:    "nostalgic",
			expectedTags:        []string{"bicycle", "wall", "red"},
		},
		{
			name: "tags list spanning lines",
			raw:  "no structure here\ntags: [\n  \"one\",\n  \"two\"\n]",
			// description/emotions unrecoverable
			expectedDescription: PlaceholderDescription,
			expectedEmotions:    PlaceholderEmotions,
			expectedTags:        []string{"one", "two"},
		},
		{
			name:                "nothing recoverable",
			raw:                 "I cannot analyze this image.",
			expectedDescription: PlaceholderDescription,
			expectedEmotions:    PlaceholderEmotions,
			expectedTags:        []string{},
		},
		{
			name:                "empty reply",
			raw:                 "",
			expectedDescription: PlaceholderDescription,
			expectedEmotions:    PlaceholderEmotions,
			expectedTags:        []string{},
		},
		{
			name:                "strict json with missing fields falls back to placeholders",
			raw:                 `{"tags": ["only", "tags"]}`,
			expectedDescription: PlaceholderDescription,
			expectedEmotions:    PlaceholderEmotions,
			expectedTags:        []string{"only", "tags"},
		},
		{
			name: "tag with embedded comma splits apart",
			// known limitation of the bracket heuristic, accepted as-is
			raw:                 "tags: [\"salt, pepper\", \"spice\"]",
			expectedDescription: PlaceholderDescription,
			expectedEmotions:    PlaceholderEmotions,
			expectedTags:        []string{"salt", "pepper", "spice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Normalize(tt.raw)

			assert.Equal(t, tt.expectedDescription, res.Description)
			assert.Equal(t, tt.expectedEmotions, res.Emotions)
			assert.Equal(t, tt.expectedTags, res.Tags)
			assert.Equal(t, tt.raw, res.RawResponse, "raw reply must be preserved verbatim")
		})
	}
}

func TestNormalizeNeverNilTags(t *testing.T) {
	for _, raw := range []string{"", "{}", "garbage", `{"tags": null}`} {
		res := Normalize(raw)
		assert.NotNil(t, res.Tags, "input %q", raw)
	}
}
