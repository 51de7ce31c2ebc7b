package entities

import (
	"time"

	"github.com/google/uuid"
)

// Answer is the reply to one question; a nil Answer means it was left empty
type Answer struct {
	QuestionLabel string  `json:"questionLabel"`
	Answer        *string `json:"answer"`
}

// FormSubmission is an immutable public response to a form
type FormSubmission struct {
	ID         uuid.UUID `json:"id"`
	ModuleName OwnerType `json:"moduleName"`
	ModuleID   uuid.UUID `json:"moduleId"`
	Code       string    `json:"code"`
	FormID     uuid.UUID `json:"formId"`
	Answers    []Answer  `json:"answers"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SubmissionInput is the public submission payload
type SubmissionInput struct {
	FormID     string        `json:"formId" binding:"required,uuid"`
	Answers    []AnswerInput `json:"answers" binding:"required,min=1,dive"`
	Email      string        `json:"email" binding:"required,email"`
	Phone      string        `json:"phone" binding:"required,phone"`
	ModuleName string        `json:"moduleName" binding:"required,oneof=business location"`
	ModuleID   string        `json:"moduleId" binding:"required,uuid"`
	Code       string        `json:"code" binding:"required"`
}

// AnswerInput is one submitted answer
type AnswerInput struct {
	QuestionLabel string  `json:"questionLabel" binding:"required"`
	Answer        *string `json:"answer"`
}

// ReconcileAnswers orders answers by the form's questions. Each question gets
// the first answer with the same label, or nil when there is none, so
// questions sharing a label all receive that first answer.
// Answers to unknown labels are dropped; required-ness is not enforced.
func ReconcileAnswers(questions []Question, answers []AnswerInput) []Answer {
	out := make([]Answer, 0, len(questions))
	for _, q := range questions {
		a := Answer{QuestionLabel: q.Label}
		for _, in := range answers {
			if in.QuestionLabel == q.Label {
				a.Answer = in.Answer
				break
			}
		}
		out = append(out, a)
	}
	return out
}

// SubmissionFilter narrows submission listing of one form
type SubmissionFilter struct {
	FormID     uuid.UUID
	ModuleName OwnerType
	ModuleID   uuid.UUID
}
