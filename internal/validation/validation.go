// Package validation holds typed request-field parsers. Each constructor
// enforces the same bounds the persisted schema expects and names the field it
// belongs to, so callers can report every violated field in one response.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors accumulates all violated fields of a request.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// OrNil lets callers return the accumulated slice as an error only when
// something actually failed.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e *Errors) add(fe *FieldError) {
	if fe != nil {
		*e = append(*e, *fe)
	}
}

type Name string

func ParseName(s string) (Name, *FieldError) {
	if err := lengthBetween("name", s, 2, 50, true); err != nil {
		return "", err
	}
	return Name(s), nil
}

type Email string

func ParseEmail(s string) (Email, *FieldError) {
	if s == "" {
		return "", &FieldError{Field: "email", Message: "is required"}
	}
	if len(s) > 255 {
		return "", &FieldError{Field: "email", Message: "must be at most 255 characters"}
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", &FieldError{Field: "email", Message: "must be a valid email address"}
	}
	return Email(s), nil
}

type Password string

func ParsePassword(s string) (Password, *FieldError) {
	if err := lengthBetween("password", s, 5, 255, true); err != nil {
		return "", err
	}
	return Password(s), nil
}

type TaskTitle string

func ParseTaskTitle(s string) (TaskTitle, *FieldError) {
	if err := lengthBetween("task", s, 5, 50, true); err != nil {
		return "", err
	}
	return TaskTitle(s), nil
}

type TaskDetail string

// ParseTaskDetail accepts the empty string; detail is optional.
func ParseTaskDetail(s string) (TaskDetail, *FieldError) {
	if s == "" {
		return "", nil
	}
	if err := lengthBetween("detail", s, 5, 255, false); err != nil {
		return "", err
	}
	return TaskDetail(s), nil
}

// Register validates all registration fields, reporting every violation.
func Register(name, email, password string) (Name, Email, Password, error) {
	var errs Errors
	n, ferr := ParseName(name)
	errs.add(ferr)
	e, ferr := ParseEmail(email)
	errs.add(ferr)
	p, ferr := ParsePassword(password)
	errs.add(ferr)
	return n, e, p, errs.OrNil()
}

// Credentials validates login fields. Only presence is checked so that a
// structurally odd email still produces the generic invalid-credentials
// response instead of leaking which part was wrong.
func Credentials(email, password string) error {
	var errs Errors
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "is required"})
	}
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "is required"})
	}
	return errs.OrNil()
}

// TodoFields validates the writable fields of a todo.
func TodoFields(task, detail string) (TaskTitle, TaskDetail, error) {
	var errs Errors
	t, ferr := ParseTaskTitle(task)
	errs.add(ferr)
	d, ferr := ParseTaskDetail(detail)
	errs.add(ferr)
	return t, d, errs.OrNil()
}

func lengthBetween(field, s string, min, max int, required bool) *FieldError {
	if s == "" && required {
		return &FieldError{Field: field, Message: "is required"}
	}
	if len(s) < min {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)}
	}
	if len(s) > max {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}
