package question

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Select asks the user to pick one of items, which are displayed using getKey.
func Select[T any](ask Asker, message string, items []T, getKey func(item T) string) (T, error) {
	var selectedValue T
	if len(items) == 0 {
		return selectedValue, fmt.Errorf("nothing to choose from for %q", message)
	}
	optionMap, options := makeItemMapAndOptions(items, getKey)
	var selectedKey string
	if err := ask(&survey.Select{
		Message: message,
		Options: options,
	}, &selectedKey); err != nil {
		return selectedValue, err
	}
	selectedValue, ok := optionMap[selectedKey]
	if !ok {
		return selectedValue, fmt.Errorf("%q is not one of the available options", selectedKey)
	}
	return selectedValue, nil
}

// SelectOrSingle skips the prompt when there is only one item to choose from.
func SelectOrSingle[T any](ask Asker, message string, items []T, getKey func(item T) string) (T, error) {
	if len(items) == 1 {
		return items[0], nil
	}
	return Select(ask, message, items, getKey)
}

func makeItemMapAndOptions[T any](items []T, getKey func(item T) string) (map[string]T, []string) {
	optionMap := make(map[string]T, len(items))
	options := make([]string, 0, len(items))
	for _, item := range items {
		key := getKey(item)
		if _, seen := optionMap[key]; seen {
			continue
		}
		optionMap[key] = item
		options = append(options, key)
	}
	return optionMap, options
}
