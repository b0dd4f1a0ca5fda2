package command

import (
	"errors"
	"fmt"
	"strings"

	"assistant/internal/domain/intent"
)

const (
	RefusalText       = "Sorry, we cannot process this request."
	MisunderstoodText = "I'm sorry, I couldn't understand your request."
	UnclassifiedText  = "I couldn't classify your request. Please try again."
)

var (
	ErrInvalidRequest    = errors.New("invalid command request")
	ErrSafetyRefusal     = errors.New("input flagged by moderation")
	ErrClassification    = errors.New("classification failed")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrDetailParse       = errors.New("detail parse failed")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrInvalidPayload    = errors.New("invalid action payload")
	ErrCollaborator      = errors.New("collaborator unavailable")
	ErrHandlerPanic      = errors.New("handler panicked")
)

// ClassificationError means the classifier output could not be turned into
// intent items. It always aborts the whole command.
type ClassificationError struct {
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrClassification.Error(), e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrClassification.Error(), e.Reason)
}

func (e *ClassificationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrClassification, e.Err}
	}
	return []error{ErrClassification}
}

type UnknownCategoryError struct {
	Index    int
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrUnknownCategory.Error(), e.Category, e.Index)
}

func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// DetailParseError is scoped to one item; siblings keep going.
type DetailParseError struct {
	Category intent.Category
	Reason   string
	Err      error
}

func (e *DetailParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s for %s: %s: %v", ErrDetailParse.Error(), e.Category, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s for %s: %s", ErrDetailParse.Error(), e.Category, e.Reason)
}

func (e *DetailParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDetailParse, e.Err}
	}
	return []error{ErrDetailParse}
}

type UnsupportedActionError struct {
	Category  intent.Category
	Kind      intent.Kind
	Supported []intent.Kind
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrUnsupportedAction.Error(), e.Category, e.Kind)
}

func (e *UnsupportedActionError) Unwrap() error {
	return ErrUnsupportedAction
}

// Text is the user-facing explanation, naming the kinds the category accepts.
func (e *UnsupportedActionError) Text() string {
	if len(e.Supported) == 0 {
		return UnclassifiedText
	}
	names := make([]string, len(e.Supported))
	for i, kind := range e.Supported {
		names[i] = string(kind)
	}
	return fmt.Sprintf("Unsupported %s command %q. Supported commands: %s.", e.Category, string(e.Kind), strings.Join(names, ", "))
}

// CollaboratorError wraps a failing external call. Stage tells whether the
// failure is global (moderation, classification) or item-local.
type CollaboratorError struct {
	Stage string
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCollaborator.Error(), e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() []error {
	return []error{ErrCollaborator, e.Err}
}

const (
	StageModeration     = "moderation"
	StageClassification = "classification"
	StageDetail         = "detail"
)
