package question

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Input asks for a single line of text. Surrounding whitespace is trimmed from the answer.
func Input(ask Asker, message string, help string, required bool) (string, error) {
	var opts []survey.AskOpt
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	var answer string
	if err := ask(&survey.Input{
		Message: message,
		Help:    help,
	}, &answer, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func Confirm(ask Asker, message string, defaultValue bool) (bool, error) {
	var answer bool
	if err := ask(&survey.Confirm{
		Message: message,
		Default: defaultValue,
	}, &answer); err != nil {
		return false, err
	}
	return answer, nil
}
