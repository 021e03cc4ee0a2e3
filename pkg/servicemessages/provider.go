package servicemessages

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Provider writes TeamCity service messages when they are enabled and the CLI runs on a TeamCity agent.
type Provider interface {
	ServiceMessage(messageName string, values any)
	SetParameter(name string, value string)
}

type provider struct {
	printer *Printer
}

func NewProvider(printer *Printer) Provider {
	return &provider{
		printer: printer,
	}
}

// Enabled reports whether service messages were switched on in config.
func Enabled() bool {
	return viper.GetBool(constants.ConfigEnableServiceMessages)
}

func (p *provider) ServiceMessage(messageName string, values any) {
	if !Enabled() {
		return
	}
	if os.Getenv(constants.EnvTeamCityVersion) == "" {
		p.printer.Error("service messages are only supported in TeamCity builds")
		return
	}
	switch t := values.(type) {
	case string:
		p.printer.Println(fmt.Sprintf("##teamcity[%s '%s']", messageName, Escape(t)))
	case map[string]string:
		keys := maps.Keys(t)
		slices.Sort(keys)
		attributes := make([]string, 0, len(keys))
		for _, key := range keys {
			attributes = append(attributes, fmt.Sprintf("%s='%s'", key, Escape(t[key])))
		}
		p.printer.Println(fmt.Sprintf("##teamcity[%s %s]", messageName, strings.Join(attributes, " ")))
	default:
		p.printer.Error("unsupported service message value type")
	}
}

// SetParameter publishes a build parameter to the running TeamCity build.
func (p *provider) SetParameter(name string, value string) {
	p.ServiceMessage("setParameter", map[string]string{"name": name, "value": value})
}

var escaper = strings.NewReplacer(
	"|", "||",
	"'", "|'",
	"\n", "|n",
	"\r", "|r",
	"[", "|[",
	"]", "|]",
)

// Escape applies the service message escaping rules to a value.
func Escape(value string) string {
	return escaper.Replace(value)
}

type Printer struct {
	Out io.Writer
	Err io.Writer
}

func NewPrinter(out io.Writer, err io.Writer) *Printer {
	return &Printer{
		Out: out,
		Err: err,
	}
}

func (p *Printer) Println(msg string) {
	fmt.Fprintln(p.Out, msg)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.Err, msg)
}
