package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionType enumerates the supported question kinds
type QuestionType string

const (
	QuestionDropdown       QuestionType = "dropdown"
	QuestionRating         QuestionType = "rating"
	QuestionYesNo          QuestionType = "yesno"
	QuestionMultipleChoice QuestionType = "multipleChoice"
	QuestionShortText      QuestionType = "shortText"
	QuestionLongText       QuestionType = "longText"
)

const (
	DefaultMinRating = 1
	DefaultMaxRating = 5
)

// Valid reports whether t is a known question type
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionDropdown, QuestionRating, QuestionYesNo, QuestionMultipleChoice, QuestionShortText, QuestionLongText:
		return true
	}
	return false
}

// QuestionPayload is the type specific part of a question.
// Only dropdown, multipleChoice and rating carry one.
type QuestionPayload interface {
	questionType() QuestionType
}

// DropdownPayload lists the selectable options of a dropdown
type DropdownPayload struct {
	Options []string
}

func (DropdownPayload) questionType() QuestionType { return QuestionDropdown }

// MultipleChoicePayload lists the choices of a multiple choice question
type MultipleChoicePayload struct {
	Choices []string
}

func (MultipleChoicePayload) questionType() QuestionType { return QuestionMultipleChoice }

// RatingPayload bounds a rating question
type RatingPayload struct {
	MinRating int `json:"minRating"`
	MaxRating int `json:"maxRating"`
}

func (RatingPayload) questionType() QuestionType { return QuestionRating }

// Question is one entry of a form. Payload always matches Type.
type Question struct {
	Label    string
	Required bool
	Type     QuestionType
	Payload  QuestionPayload
}

type questionJSON struct {
	QuestionLabel string         `json:"questionLabel"`
	IsRequired    bool           `json:"isRequired"`
	QuestionType  QuestionType   `json:"questionType"`
	Options       []string       `json:"options,omitempty"`
	Choices       []string       `json:"choices,omitempty"`
	RatingData    *RatingPayload `json:"ratingData,omitempty"`
}

// MarshalJSON writes only the payload field matching the question type
func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{
		QuestionLabel: q.Label,
		IsRequired:    q.Required,
		QuestionType:  q.Type,
	}
	switch p := q.Payload.(type) {
	case DropdownPayload:
		out.Options = p.Options
	case MultipleChoicePayload:
		out.Choices = p.Choices
	case RatingPayload:
		out.RatingData = &p
	}
	return json.Marshal(out)
}

// UnmarshalJSON builds the payload from the field matching the question type
// and ignores the others
func (q *Question) UnmarshalJSON(data []byte) error {
	var in questionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	q.Label = in.QuestionLabel
	q.Required = in.IsRequired
	q.Type = in.QuestionType
	q.Payload = nil

	switch in.QuestionType {
	case QuestionDropdown:
		if in.Options != nil {
			q.Payload = DropdownPayload{Options: in.Options}
		}
	case QuestionMultipleChoice:
		if in.Choices != nil {
			q.Payload = MultipleChoicePayload{Choices: in.Choices}
		}
	case QuestionRating:
		rating := RatingPayload{MinRating: DefaultMinRating, MaxRating: DefaultMaxRating}
		if in.RatingData != nil {
			if in.RatingData.MinRating != 0 {
				rating.MinRating = in.RatingData.MinRating
			}
			if in.RatingData.MaxRating != 0 {
				rating.MaxRating = in.RatingData.MaxRating
			}
		}
		q.Payload = rating
	}
	return nil
}

// Validate checks the type specific rules of a question
func (q Question) Validate() error {
	if q.Label == "" {
		return errors.New("questionLabel is required")
	}
	if !q.Type.Valid() {
		return fmt.Errorf("questionType %q is not supported", q.Type)
	}
	switch q.Type {
	case QuestionDropdown:
		p, ok := q.Payload.(DropdownPayload)
		if !ok || len(p.Options) == 0 {
			return fmt.Errorf("question %q: options are required for dropdown", q.Label)
		}
	case QuestionMultipleChoice:
		p, ok := q.Payload.(MultipleChoicePayload)
		if !ok || len(p.Choices) == 0 {
			return fmt.Errorf("question %q: choices are required for multipleChoice", q.Label)
		}
	case QuestionRating:
		p, ok := q.Payload.(RatingPayload)
		if !ok {
			return fmt.Errorf("question %q: ratingData is required for rating", q.Label)
		}
		if p.MinRating < DefaultMinRating || p.MaxRating > DefaultMaxRating || p.MinRating > p.MaxRating {
			return fmt.Errorf("question %q: rating must be within %d..%d", q.Label, DefaultMinRating, DefaultMaxRating)
		}
	}
	return nil
}

// ValidateQuestions checks a whole question list
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return errors.New("questions: at least one question is required")
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Form is a tenant owned questionnaire
type Form struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FormInput creates or replaces a form definition
type FormInput struct {
	Name      string     `json:"name" binding:"required"`
	Questions []Question `json:"questions" binding:"required,min=1,dive"`
}

// UpdateFormInput is a partial form update
type UpdateFormInput struct {
	Name      *string    `json:"name"`
	Questions []Question `json:"questions" binding:"omitempty,dive"`
}
