package model

import "time"

// Config is the complete nedextract configuration
type Config struct {
	Tasks       []string     `yaml:"tasks" mapstructure:"tasks"`
	OutputDir   string       `yaml:"output_dir" mapstructure:"output_dir"`
	Format      string       `yaml:"format" mapstructure:"format"`
	ANBIFile    string       `yaml:"anbis_file" mapstructure:"anbis_file"`
	SectorModel string       `yaml:"sector_model" mapstructure:"sector_model"`
	Tagger      TaggerConfig `yaml:"tagger" mapstructure:"tagger"`
	Fetch       FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Worker      WorkerConfig `yaml:"worker" mapstructure:"worker"`
	Log         LogConfig    `yaml:"log" mapstructure:"log"`
}

// TaggerConfig selects and tunes the NER engine
type TaggerConfig struct {
	// Kind is one of "prose", "llm" or "gazetteer"
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Gazetteer is the entity list used by the gazetteer tagger
	Gazetteer string `yaml:"gazetteer,omitempty" mapstructure:"gazetteer"`

	// ProseModel is a directory with a custom prose NER model
	ProseModel string `yaml:"prose_model,omitempty" mapstructure:"prose_model"`

	LLM LLMConfig `yaml:"llm" mapstructure:"llm"`

	CacheDir string        `yaml:"cache_dir" mapstructure:"cache_dir"`
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// LLMConfig configures the LLM-backed tagger
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	// BatchSize is the number of sentences sent per request
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
}

// FetchConfig controls downloading of remote reports
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBytes      int64         `yaml:"max_bytes" mapstructure:"max_bytes"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// WorkerConfig controls document-level parallelism
type WorkerConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	// File enables a rotating log file next to stderr output
	File       string `yaml:"file,omitempty" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Tasks:       []string{string(TaskAll)},
		OutputDir:   "Output",
		Format:      "xlsx",
		ANBIFile:    "Data/anbis_clean.csv",
		SectorModel: "Pretrained/sector_classifier.msgpack",
		Tagger: TaggerConfig{
			Kind: "prose",
			LLM: LLMConfig{
				Provider:  "openai",
				Timeout:   60,
				MaxTokens: 4000,
				BatchSize: 40,
			},
			CacheDir: ".nedextract-cache",
			CacheTTL: 7 * 24 * time.Hour,
		},
		Fetch: FetchConfig{
			Timeout:       60 * time.Second,
			MaxBytes:      100 << 20,
			UserAgent:     "nedextract/0.3 (+https://github.com/ppiankov/nedextract)",
			RespectRobots: true,
			RatePerSecond: 1,
			Burst:         2,
		},
		Worker: WorkerConfig{
			Concurrency: 2,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
