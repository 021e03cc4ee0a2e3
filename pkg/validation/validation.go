package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/inedo/teamcity-cli/pkg/constants"
)

func asString(val interface{}) (string, error) {
	str, ok := val.(string)
	if !ok {
		// otherwise we cannot convert the value into a string and cannot perform check
		return "", fmt.Errorf("cannot check value on response of type %v", reflect.TypeOf(val))
	}
	return strings.TrimSpace(str), nil
}

// IsAbsoluteUrl requires an http or https url with a host.
func IsAbsoluteUrl(val interface{}) error {
	str, err := asString(val)
	if err != nil {
		return err
	}
	u, err := url.Parse(str)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("'%s' is not an absolute http or https url", str)
	}
	return nil
}

// IsPropertyAssignment requires the form name=value with a non-blank name.
func IsPropertyAssignment(val interface{}) error {
	str, err := asString(val)
	if err != nil {
		return err
	}
	name, _, found := strings.Cut(str, "=")
	if !found || strings.TrimSpace(name) == "" {
		return fmt.Errorf("'%s' must be in the form name=value", str)
	}
	return nil
}

// IsPositiveDuration requires a duration such as 3s or 1m30s.
func IsPositiveDuration(val interface{}) error {
	str, err := asString(val)
	if err != nil {
		return err
	}
	d, err := time.ParseDuration(str)
	if err != nil || d <= 0 {
		return fmt.Errorf("'%s' is not a positive duration such as 3s or 1m", str)
	}
	return nil
}

func IsBool(val interface{}) error {
	str, err := asString(val)
	if err != nil {
		return err
	}
	if _, err := strconv.ParseBool(str); err != nil {
		return fmt.Errorf("'%s' is not true or false", str)
	}
	return nil
}

// OneOf requires one of options, ignoring case.
func OneOf(options ...string) survey.Validator {
	return func(val interface{}) error {
		str, err := asString(val)
		if err != nil {
			return err
		}
		for _, o := range options {
			if strings.EqualFold(o, str) {
				return nil
			}
		}
		return fmt.Errorf("'%s' must be one of %s", str, strings.Join(options, ", "))
	}
}

// ForConfigKey returns the validator for values of a config key, or nil when any value is accepted.
func ForConfigKey(key string) survey.Validator {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case strings.ToLower(constants.ConfigServer):
		return IsAbsoluteUrl
	case strings.ToLower(constants.ConfigPollInterval):
		return IsPositiveDuration
	case strings.ToLower(constants.ConfigOutputFormat):
		return OneOf(constants.OutputFormatTable, constants.OutputFormatJson, constants.OutputFormatBasic)
	case strings.ToLower(constants.ConfigNoPrompt),
		strings.ToLower(constants.ConfigVerbose),
		strings.ToLower(constants.ConfigEnableServiceMessages),
		strings.ToLower(constants.ConfigIgnoreSslErrors):
		return IsBool
	}
	return nil
}
