package errors

import "fmt"

type OsEnvironmentError struct {
	EnvironmentVariable string
}

func (e *OsEnvironmentError) Error() string {
	return fmt.Sprintf("%s environment variable is missing or blank", e.EnvironmentVariable)
}

type ArgumentNullOrEmptyError struct {
	Name string
}

func NewArgumentNullOrEmptyError(name string) *ArgumentNullOrEmptyError {
	return &ArgumentNullOrEmptyError{Name: name}
}

func (e *ArgumentNullOrEmptyError) Error() string {
	return fmt.Sprintf("the input argument %s is nil or empty", e.Name)
}

// PromptDisabledError is returned when a command would need to ask a question in automation mode.
type PromptDisabledError struct{}

func (e *PromptDisabledError) Error() string {
	return "prompting is disabled; supply all required values as flags or arguments"
}
