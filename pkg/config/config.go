package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreAstra    = "astra"
	StorePgVector = "pgvector"
	StoreChromem  = "chromem"

	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	ScraperBrowser = "browser"
	ScraperHTTP    = "http"
)

type Config struct {
	Store struct {
		Backend    string `yaml:"backend"`
		Collection string `yaml:"collection"`
		Metric     string `yaml:"metric"`
	} `yaml:"store"`

	Astra struct {
		Namespace string `yaml:"namespace"`
		Endpoint  string `yaml:"endpoint"`
		Token     string `yaml:"token"`
	} `yaml:"astra"`

	Postgres struct {
		URL   string `yaml:"url"`
		Lists int    `yaml:"lists"` // ivfflat lists; 0 takes the store default
	} `yaml:"postgres"`

	Chromem struct {
		Path     string `yaml:"path"`
		Compress bool   `yaml:"compress"`
	} `yaml:"chromem"`

	Embedding struct {
		Provider      string `yaml:"provider"`
		Model         string `yaml:"model"`
		APIKey        string `yaml:"api_key"`
		BaseURL       string `yaml:"base_url"`
		OllamaBaseURL string `yaml:"ollama_base_url"`
	} `yaml:"embedding"`

	Scraper struct {
		Mode      string        `yaml:"mode"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
		ExecPath  string        `yaml:"exec_path"`
	} `yaml:"scraper"`

	Processor struct {
		ChunkSize    int  `yaml:"chunk_size"`
		ChunkOverlap *int `yaml:"chunk_overlap"` // nil takes the default, 0 disables overlap
	} `yaml:"processor"`

	Sources []string `yaml:"sources"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/f1gpt/config.yaml"),
			"/etc/f1gpt/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Environment wins over the file
	mergeWithEnv(&config)

	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Store.Backend == "" {
		config.Store.Backend = StoreAstra
	}
	if config.Store.Metric == "" {
		config.Store.Metric = "dot_product"
	}

	if config.Embedding.Provider == "" {
		config.Embedding.Provider = ProviderOpenAI
	}
	if config.Embedding.Model == "" {
		if config.Embedding.Provider == ProviderOllama {
			config.Embedding.Model = "nomic-embed-text:latest"
		} else {
			config.Embedding.Model = "text-embedding-3-small"
		}
	}
	if config.Embedding.OllamaBaseURL == "" {
		config.Embedding.OllamaBaseURL = "http://localhost:11434"
	}

	if config.Scraper.Mode == "" {
		config.Scraper.Mode = ScraperBrowser
	}
	if config.Scraper.Timeout == 0 {
		if config.Scraper.Mode == ScraperHTTP {
			config.Scraper.Timeout = 30 * time.Second
		} else {
			config.Scraper.Timeout = 60 * time.Second
		}
	}

	if config.Processor.ChunkSize == 0 {
		config.Processor.ChunkSize = 512
	}
	if config.Processor.ChunkOverlap == nil {
		overlap := 100
		config.Processor.ChunkOverlap = &overlap
	}
}

// envString copies the first non-empty variable among names into dst.
func envString(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

func mergeWithEnv(config *Config) {
	envString(&config.Astra.Namespace, EnvNamespace)
	envString(&config.Store.Collection, EnvCollection)
	envString(&config.Astra.Endpoint, EnvEndpoint)
	envString(&config.Astra.Token, EnvToken)
	envString(&config.Embedding.APIKey, EnvOpenAIKey, envOpenAIKeyLegacy)

	envString(&config.Store.Backend, "VECTOR_STORE")
	envString(&config.Embedding.Provider, "EMBEDDING_PROVIDER")
	envString(&config.Embedding.BaseURL, "OPENAI_BASE_URL")
	envString(&config.Embedding.OllamaBaseURL, "OLLAMA_BASE_URL")
	envString(&config.Postgres.URL, EnvDatabaseURL)
	envString(&config.Chromem.Path, "CHROMEM_PATH")
}
