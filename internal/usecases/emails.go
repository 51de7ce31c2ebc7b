package usecases

import (
	"bytes"
	"fmt"
	"html/template"

	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/domain/gateways"
)

const (
	otpEmailSubject        = "Your Password reset otp (valid for 10 mint)"
	submissionEmailSubject = "New Form Submission"
)

func otpEmail(to, code string) gateways.Email {
	return gateways.Email{
		To:      []string{to},
		Subject: otpEmailSubject,
		Text:    fmt.Sprintf("Your Reset Password OTP is %s", code),
	}
}

var submissionTemplate = template.Must(template.New("submission").Parse(`<h2>New submission for {{.FormName}}</h2>
<p>From {{.Email}} ({{.Phone}})</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Question</th><th>Answer</th></tr>
{{range .Rows}}<tr><td>{{.Label}}</td><td>{{.Answer}}</td></tr>
{{end}}</table>`))

type submissionRow struct {
	Label  string
	Answer string
}

func submissionEmail(to []string, form *entities.Form, submission *entities.FormSubmission) (gateways.Email, error) {
	rows := make([]submissionRow, 0, len(submission.Answers))
	for _, a := range submission.Answers {
		answer := "-"
		if a.Answer != nil && *a.Answer != "" {
			answer = *a.Answer
		}
		rows = append(rows, submissionRow{Label: a.QuestionLabel, Answer: answer})
	}

	var buf bytes.Buffer
	err := submissionTemplate.Execute(&buf, map[string]interface{}{
		"FormName": form.Name,
		"Email":    submission.Email,
		"Phone":    submission.Phone,
		"Rows":     rows,
	})
	if err != nil {
		return gateways.Email{}, fmt.Errorf("render submission email: %w", err)
	}
	return gateways.Email{
		To:      to,
		Subject: submissionEmailSubject,
		HTML:    buf.String(),
	}, nil
}

// uniqueEmails drops empty and repeated addresses, keeping the first occurrence
func uniqueEmails(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, e := range list {
			if e == "" {
				continue
			}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
