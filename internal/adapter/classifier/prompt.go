package classifier

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const instructions = `You are the classifier of a personal knowledge base called Second Brain.
Route each incoming thought into exactly one category:

- people: a specific person, a relationship, something to follow up on with someone
- projects: multi-step work, goals, ongoing initiatives
- ideas: concepts, insights, things worth exploring later
- admin: errands, appointments, logistics, simple one-off to-dos
- vocabulary: a word or term to learn, with its meaning

Be decisive. When unsure, make your best guess and lower the confidence.
A confidence below 0.6 holds the thought for manual review.`

// fieldSchemas holds the extractedFields shape for each destination.
var fieldSchemas = map[domain.Destination]string{
	domain.DestinationPeople: `{
    "name": "the person's name",
    "context": "how the user knows them or why they matter",
    "followUps": ["things to remember or do regarding this person"]
  }`,
	domain.DestinationProjects: `{
    "name": "project name",
    "nextAction": "the single next physical action",
    "notes": "anything else worth keeping"
  }`,
	domain.DestinationIdeas: `{
    "title": "short title",
    "oneLiner": "the idea in one sentence",
    "notes": "supporting detail"
  }`,
	domain.DestinationAdmin: `{
    "task": "what needs doing",
    "dueDate": "ISO-8601 date (YYYY-MM-DD) or null",
    "notes": "extra detail"
  }`,
	domain.DestinationVocabulary: `{
    "word": "the word or phrase",
    "definition": "a short definition",
    "partOfSpeech": "noun, verb, ... or null",
    "example": "an example sentence or null",
    "source": "where the user met the word or null"
  }`,
}

// buildPrompt renders the classification prompt. When forced is a valid
// destination the model is told to extract fields for that destination only.
func buildPrompt(text string, forced domain.Destination) string {
	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\nRespond with ONLY a JSON object, no markdown, in this shape:\n")

	if forced.IsValid() {
		fmt.Fprintf(&sb, `{
  "destination": %q,
  "confidence": 1.0,
  "title": "short human-readable title",
  "extractedFields": %s
}

The user already filed this thought under %q. Do not pick another category;
derive the title and fields from the text.`, forced, fieldSchemas[forced], forced)
	} else {
		sb.WriteString(`{
  "destination": "people | projects | ideas | admin | vocabulary",
  "confidence": 0.0-1.0,
  "title": "short human-readable title",
  "extractedFields": { ... }
}

extractedFields depends on the destination:`)
		for _, d := range domain.Destinations {
			fmt.Fprintf(&sb, "\n\n%s:\n  %s", d, fieldSchemas[d])
		}
	}

	fmt.Fprintf(&sb, "\n\nThought to classify:\n%q", text)
	return sb.String()
}
