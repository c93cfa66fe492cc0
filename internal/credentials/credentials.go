// Package credentials reads the Slack and OpenAI credentials from the
// process environment.
package credentials

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kelseyhightower/envconfig"
)

// Credentials holds the values checked by credcheck. A nil field means the
// variable is not set; an empty string means it is set but empty.
type Credentials struct {
	SlackBotToken      *string `envconfig:"SLACK_BOT_TOKEN" desc:"Slack bot user OAuth token"`
	SlackSigningSecret *string `envconfig:"SLACK_SIGNING_SECRET" desc:"Slack app signing secret"`
	OpenAIAPIKey       *string `envconfig:"OPENAI_API_KEY" desc:"OpenAI API key"`
}

// Field is one credential together with the variable it was read from
type Field struct {
	Key   string
	Value *string
}

// Keys lists the variables in report order
var Keys = []string{"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "OPENAI_API_KEY"}

// Lookup reads the credentials from the environment. Unset variables are
// left nil; nothing is required.
func Lookup() (*Credentials, error) {
	var c Credentials
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	return &c, nil
}

// Fields returns the credentials in report order: bot token, signing
// secret, API key
func (c *Credentials) Fields() []Field {
	return []Field{
		{Key: Keys[0], Value: c.SlackBotToken},
		{Key: Keys[1], Value: c.SlackSigningSecret},
		{Key: Keys[2], Value: c.OpenAIAPIKey},
	}
}

const usageFormat = `{{range .}}{{usage_key .}}	{{usage_description .}}
{{end}}`

// Usage writes one line per consumed variable with its description
func Usage(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 1, 0, 4, ' ', 0)
	if err := envconfig.Usagef("", &Credentials{}, tw, usageFormat); err != nil {
		return fmt.Errorf("failed to render usage: %w", err)
	}
	return tw.Flush()
}
