package flag

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Flag[T any] struct {
	Name   string
	Value  T
	Secure bool
}

type Generatable interface {
	GetName() string
	GetValue() any
	IsSecure() bool
}

func (f *Flag[T]) GetName() string {
	return f.Name
}

func (f *Flag[T]) GetValue() any {
	return f.Value
}

func (f *Flag[T]) IsSecure() bool {
	return f.Secure
}

func New[T any](name string, secure bool) *Flag[T] {
	return &Flag[T]{
		Name:   name,
		Secure: secure,
	}
}

const maskedValue = "***"

// GenerateAutomationCmd returns the command line that repeats an interactive run in automation mode.
func GenerateAutomationCmd(cmdPath string, flags ...Generatable) string {
	args := append(strings.Fields(cmdPath), "--no-prompt")
	addValue := func(flag Generatable, value string) {
		if flag.IsSecure() {
			value = maskedValue
		}
		args = append(args, "--"+flag.GetName(), value)
	}

	for _, flag := range flags {
		switch value := flag.GetValue().(type) {
		case string:
			if value != "" {
				addValue(flag, value)
			}
		case []string:
			for _, v := range value {
				addValue(flag, v)
			}
		case map[string]string:
			keys := maps.Keys(value)
			slices.Sort(keys)
			for _, k := range keys {
				addValue(flag, k+"="+value[k])
			}
		case bool:
			if value {
				args = append(args, "--"+flag.GetName())
			}
		default:
			panic(fmt.Errorf("can not generate automation cmd for unsupported flag type: %T", value))
		}
	}
	return shellquote.Join(args...)
}
