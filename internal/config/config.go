// Package config resolves the relay configuration once per process.
//
// The webhook URL is not passed through the environment directly; the
// environment names a Secret Manager secret that holds it.
package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"google.golang.org/api/option"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/errs"
)

// Env holds the raw environment inputs.
type Env struct {
	ProjectID string `envconfig:"GCP_PROJECT_ID"`
	SecretID  string `envconfig:"SECRET_ID"`
}

// Config is the resolved configuration. It is built once at cold start and
// never modified afterwards.
type Config struct {
	SecretPath string
	WebhookURL string
}

// Enabled reports whether events can be relayed.
func (c *Config) Enabled() bool {
	return c != nil && c.WebhookURL != ""
}

// SecretVersionPath returns the locator of the latest version of a secret.
func SecretVersionPath(projectID, secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretID)
}

// LoadEnv reads the environment. Both the project and the secret identifier
// must be set to non-empty values.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return env, errs.ConfigurationError.Wrap(err, "process environment")
	}

	env.ProjectID = strings.TrimSpace(env.ProjectID)
	env.SecretID = strings.TrimSpace(env.SecretID)
	if env.ProjectID == "" || env.SecretID == "" {
		return env, errs.ConfigurationError.New("GCP_PROJECT_ID and SECRET_ID environment variables must be set")
	}
	return env, nil
}

// Resolve fetches the webhook URL named by env from the secret store.
func Resolve(ctx context.Context, env Env, secrets SecretAccessor) (*Config, error) {
	if env.ProjectID == "" || env.SecretID == "" {
		return nil, errs.ConfigurationError.New("project and secret identifiers are required")
	}

	path := SecretVersionPath(env.ProjectID, env.SecretID)
	data, err := secrets.AccessSecretVersion(ctx, path)
	if err != nil {
		return nil, errs.ConfigurationError.Wrap(err, "access secret version %s", path)
	}

	if !utf8.Valid(data) {
		return nil, errs.ConfigurationError.New("secret %s is not valid UTF-8", path)
	}

	webhookURL := strings.TrimSpace(string(data))
	if err := validateWebhookURL(webhookURL); err != nil {
		return nil, errs.ConfigurationError.Wrap(err, "secret %s", path)
	}

	return &Config{
		SecretPath: path,
		WebhookURL: webhookURL,
	}, nil
}

// Load reads the environment and resolves the webhook URL through Secret
// Manager. opts are passed to the Secret Manager client.
func Load(ctx context.Context, opts ...option.ClientOption) (*Config, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	secrets, err := NewSecretManager(ctx, opts...)
	if err != nil {
		return nil, errs.ConfigurationError.Wrap(err, "create secret manager client")
	}

	return Resolve(ctx, env, secrets)
}

func validateWebhookURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("error while parsing webhook URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("webhook URL must use https, got scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("webhook URL has no host")
	}
	return nil
}
