package variables

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/inedo/teamcity-cli/pkg/servicemessages"
	"github.com/joho/godotenv"
)

// Sink publishes output variables back to whatever invoked the CLI.
type Sink interface {
	Set(name string, value string) error
}

type serviceMessageSink struct {
	provider servicemessages.Provider
}

// NewServiceMessageSink publishes variables as TeamCity setParameter service messages.
func NewServiceMessageSink(provider servicemessages.Provider) Sink {
	return &serviceMessageSink{provider: provider}
}

func (s *serviceMessageSink) Set(name string, value string) error {
	s.provider.SetParameter(name, value)
	return nil
}

// EnvFileSink merges variables into a dotenv file, creating it when needed.
type EnvFileSink struct {
	Path string
}

func (s *EnvFileSink) Set(name string, value string) error {
	values := map[string]string{}
	if _, err := os.Stat(s.Path); err == nil {
		existing, err := godotenv.Read(s.Path)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", s.Path, err)
		}
		values = existing
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	values[name] = value
	return godotenv.Write(values, s.Path)
}

type multiSink []Sink

// Multi sets every variable on each of sinks, carrying on past failures.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Set(name string, value string) error {
	var result *multierror.Error
	for _, sink := range m {
		if err := sink.Set(name, value); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
