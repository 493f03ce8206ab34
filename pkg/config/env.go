package config

import (
	"fmt"
	"strings"
)

const (
	EnvNamespace   = "ASTRA_DB_NAMESPACE"
	EnvCollection  = "ASTRA_DB_COLLECTION"
	EnvEndpoint    = "ASTRA_DB_API_ENDPOINT"
	EnvToken       = "ASTRA_DB_APPLICATION_TOKEN"
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"

	envOpenAIKeyLegacy = "OPEN_API_KEY"
)

// EnvVar is one required setting and whether it resolved to a non-empty value.
type EnvVar struct {
	Name    string
	Present bool
}

// MissingEnvError lists every required setting, flagging the empty ones.
type MissingEnvError struct {
	Vars []EnvVar
}

// Missing returns the names of the empty settings in declaration order.
func (e *MissingEnvError) Missing() []string {
	var names []string
	for _, v := range e.Vars {
		if !v.Present {
			names = append(names, v.Name)
		}
	}
	return names
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing(), ", "))
}

// Required returns the settings the selected store and embedding provider need,
// in the order they are reported.
func (c *Config) Required() []EnvVar {
	var vars []EnvVar
	add := func(name, value string) {
		vars = append(vars, EnvVar{Name: name, Present: strings.TrimSpace(value) != ""})
	}

	switch c.Store.Backend {
	case StoreAstra:
		add(EnvNamespace, c.Astra.Namespace)
		add(EnvCollection, c.Store.Collection)
		add(EnvEndpoint, c.Astra.Endpoint)
		add(EnvToken, c.Astra.Token)
	default:
		add(EnvCollection, c.Store.Collection)
	}

	if c.Embedding.Provider == ProviderOpenAI {
		add(EnvOpenAIKey, c.Embedding.APIKey)
	}

	if c.Store.Backend == StorePgVector {
		add(EnvDatabaseURL, c.Postgres.URL)
	}

	return vars
}

// RequireEnv fails with a *MissingEnvError when any required setting is empty.
// It performs no I/O and must run before any client is constructed.
func (c *Config) RequireEnv() error {
	vars := c.Required()
	for _, v := range vars {
		if !v.Present {
			return &MissingEnvError{Vars: vars}
		}
	}
	return nil
}
