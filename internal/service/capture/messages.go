package capture

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const reactionFiled = "white_check_mark"

var destinationLabels = map[domain.Destination]string{
	domain.DestinationPeople:     "People",
	domain.DestinationProjects:   "Projects",
	domain.DestinationIdeas:      "Ideas",
	domain.DestinationAdmin:      "Admin",
	domain.DestinationVocabulary: "Vocabulary",
}

func keywordHint() string {
	parts := make([]string, 0, len(domain.OverrideKeywords))
	for _, k := range domain.OverrideKeywords {
		parts = append(parts, "`"+k+":`")
	}
	return strings.Join(parts, ", ")
}

func targetHint() string {
	parts := make([]string, 0, len(domain.OverrideKeywords)+1)
	for _, k := range domain.OverrideKeywords {
		parts = append(parts, "`"+k+"`")
	}
	parts = append(parts, "`"+domain.DeleteKeywords[0]+"`")
	return strings.Join(parts, ", ")
}

func filedMessage(rec domain.CapturedRecord, confidence float64) string {
	return fmt.Sprintf("Filed to *%s*: %s (confidence %.0f%%)\nWrong place? Reply `fix: <category>` in this thread.",
		destinationLabels[rec.Destination], rec.Title, confidence*100)
}

func reviewMessage(cls domain.Classification) string {
	return fmt.Sprintf("I'm not sure where this belongs (best guess: %s, confidence %.0f%%).\n"+
		"Repost it with a prefix like %s, or reply `fix: <category>` in this thread.",
		cls.Destination, cls.Confidence*100, keywordHint())
}

func correctedMessage(rec domain.CapturedRecord) string {
	return fmt.Sprintf("Moved to *%s*: %s", destinationLabels[rec.Destination], rec.Title)
}

func deletedMessage() string {
	return "Removed from the inbox log."
}

func alreadyDeletedMessage() string {
	return "This capture was already deleted."
}

func refusedMessage() string {
	return "This capture was deleted and can no longer be corrected. Post it again to refile it."
}

func notFoundMessage() string {
	return "I couldn't find the original message for this correction."
}

func invalidTargetMessage(target string) string {
	return fmt.Sprintf("I don't know the category %q. Try one of: %s.", target, targetHint())
}

func failureMessage() string {
	return "Sorry, something went wrong while processing this. Please try again."
}
