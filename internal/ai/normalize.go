package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Placeholder values used when a field cannot be recovered from the reply.
const (
	PlaceholderDescription = "No description available"
	PlaceholderEmotions    = "No emotions detected"
)

// Result is the fixed-shape analysis extracted from a model reply.
type Result struct {
	Description string
	Emotions    string
	Tags        []string
	RawResponse string
}

var (
	descriptionQuotedRe = regexp.MustCompile(`(?i)description[:\s]+"([^"]+)"`)
	descriptionLineRe   = regexp.MustCompile(`(?i)description[:\s]+([^\n]+)`)
	emotionsQuotedRe    = regexp.MustCompile(`(?i)emotions[:\s]+"([^"]+)"`)
	emotionsLineRe      = regexp.MustCompile(`(?i)emotions[:\s]+([^\n]+)`)
	tagsRe              = regexp.MustCompile(`(?is)tags[:\s]+\[(.*?)\]`)
	codeFenceRe         = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// Normalize converts a model reply into a Result. It is total over all
// inputs: a strict JSON parse is attempted first, then best-effort pattern
// extraction, and unrecoverable fields fall back to placeholders. The raw
// reply is always preserved verbatim in RawResponse.
func Normalize(raw string) Result {
	res := Result{RawResponse: raw}

	var parsed struct {
		Description string   `json:"description"`
		Emotions    string   `json:"emotions"`
		Tags        []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err == nil {
		res.Description = parsed.Description
		res.Emotions = parsed.Emotions
		res.Tags = parsed.Tags
	} else {
		res.Description = extractField(raw, descriptionQuotedRe, descriptionLineRe)
		res.Emotions = extractField(raw, emotionsQuotedRe, emotionsLineRe)
		res.Tags = extractTags(raw)
	}

	if res.Description == "" {
		res.Description = PlaceholderDescription
	}
	if res.Emotions == "" {
		res.Emotions = PlaceholderEmotions
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	return res
}

// stripCodeFence unwraps a reply the model put inside a markdown code
// block, a common habit when asked for JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}

// extractField recovers a labeled value, preferring a quoted form and
// falling back to the remainder of the label's line.
func extractField(raw string, quoted, line *regexp.Regexp) string {
	if m := quoted.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := line.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractTags recovers a bracketed tag list, splitting on commas and
// trimming whitespace and surrounding quotes from each entry. Tags with
// embedded commas split apart; that matches the upstream format's
// ambiguity and is accepted.
func extractTags(raw string) []string {
	m := tagsRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	parts := strings.Split(m[1], ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"`))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
