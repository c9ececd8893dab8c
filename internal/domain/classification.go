package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractedFields is the destination-specific part of a Classification.
// Exactly one implementation exists per Destination.
type ExtractedFields interface {
	Destination() Destination
}

type PeopleFields struct {
	Name      string   `json:"name"`
	Context   string   `json:"context"`
	FollowUps []string `json:"followUps"`
}

type ProjectFields struct {
	Name       string `json:"name"`
	NextAction string `json:"nextAction"`
	Notes      string `json:"notes"`
}

type IdeaFields struct {
	Title    string `json:"title"`
	OneLiner string `json:"oneLiner"`
	Notes    string `json:"notes"`
}

type AdminFields struct {
	Task    string  `json:"task"`
	DueDate *string `json:"dueDate"`
	Notes   string  `json:"notes"`
}

type VocabularyFields struct {
	Word         string  `json:"word"`
	Definition   string  `json:"definition"`
	PartOfSpeech *string `json:"partOfSpeech"`
	Example      *string `json:"example"`
	Source       *string `json:"source"`
}

func (PeopleFields) Destination() Destination     { return DestinationPeople }
func (ProjectFields) Destination() Destination    { return DestinationProjects }
func (IdeaFields) Destination() Destination       { return DestinationIdeas }
func (AdminFields) Destination() Destination      { return DestinationAdmin }
func (VocabularyFields) Destination() Destination { return DestinationVocabulary }

// Classification is the interpreted form of a capture. It is never persisted.
type Classification struct {
	Destination Destination
	Confidence  float64
	Title       string
	Fields      ExtractedFields
}

type rawClassification struct {
	Destination     string          `json:"destination"`
	Confidence      *float64        `json:"confidence"`
	Title           string          `json:"title"`
	ExtractedFields json.RawMessage `json:"extractedFields"`
}

// DecodeClassification parses classifier JSON output.
//
// When force is a valid destination, the destination reported by the model is
// ignored, the extracted fields are decoded into force's shape and confidence
// is fixed at 1.0. Otherwise the reported destination must be valid.
// Confidence is clamped to [0, 1].
func DecodeClassification(data []byte, force Destination) (Classification, error) {
	var raw rawClassification
	if err := json.Unmarshal(data, &raw); err != nil {
		return Classification{}, fmt.Errorf("%w: decode: %v", ErrClassification, err)
	}

	dest := Destination(strings.ToLower(strings.TrimSpace(raw.Destination)))
	confidence := 0.0
	if raw.Confidence != nil {
		confidence = clamp01(*raw.Confidence)
	}
	if force.IsValid() {
		dest = force
		confidence = 1.0
	}
	if !dest.IsValid() {
		return Classification{}, fmt.Errorf("%w: destination %q", ErrClassification, raw.Destination)
	}

	fields, err := decodeFields(dest, raw.ExtractedFields)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %s fields: %v", ErrClassification, dest, err)
	}

	return Classification{
		Destination: dest,
		Confidence:  confidence,
		Title:       strings.TrimSpace(raw.Title),
		Fields:      fields,
	}, nil
}

func decodeFields(dest Destination, data json.RawMessage) (ExtractedFields, error) {
	empty := len(data) == 0 || string(data) == "null"

	switch dest {
	case DestinationPeople:
		var f PeopleFields
		if !empty {
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, err
			}
		}
		return f, nil
	case DestinationProjects:
		var f ProjectFields
		if !empty {
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, err
			}
		}
		return f, nil
	case DestinationIdeas:
		var f IdeaFields
		if !empty {
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, err
			}
		}
		return f, nil
	case DestinationAdmin:
		var f AdminFields
		if !empty {
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, err
			}
		}
		return f, nil
	case DestinationVocabulary:
		var f VocabularyFields
		if !empty {
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, err
			}
		}
		return f, nil
	}
	return nil, fmt.Errorf("unsupported destination %q", dest)
}

func clamp01(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
