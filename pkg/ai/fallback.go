package ai

import (
	"fmt"

	"github.com/goccy/go-json"
)

// explanationPreviewLen is how much of the image explanation the fallback
// caption quotes.
const explanationPreviewLen = 80

// defaultFunFact is used by the fallback answer when the context carries no
// APOD title.
const defaultFunFact = "The universe is vast and full of wonders!"

// FallbackCaption synthesizes a caption locally from the image title and a
// truncated prefix of its explanation. It is deterministic and performs no
// network call.
func FallbackCaption(title, explanation string) string {
	preview := explanation
	if runes := []rune(explanation); len(runes) > explanationPreviewLen {
		preview = string(runes[:explanationPreviewLen])
	}
	return fmt.Sprintf("\"%s\" — A cosmic wonder! Here’s a poetic take: %s...", title, preview)
}

// fallbackContext is the subset of the frontend's context blob the fallback
// answer inspects.
type fallbackContext struct {
	APOD struct {
		Title string `json:"title"`
	} `json:"apod"`
}

// FallbackAnswer synthesizes an answer locally, echoing the question and a
// fun fact taken from the context's APOD title when present. It is
// deterministic and performs no network call.
func FallbackAnswer(question string, contextData json.RawMessage) string {
	fact := defaultFunFact

	if len(contextData) > 0 {
		var parsed fallbackContext
		if err := json.Unmarshal(contextData, &parsed); err == nil && parsed.APOD.Title != "" {
			fact = parsed.APOD.Title
		}
	}

	return fmt.Sprintf("I'm a demo NASA AI. You asked: \"%s\". Here's a fun fact: %s", question, fact)
}
