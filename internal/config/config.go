package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds the web server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig holds redis connection settings. Leave Addr empty to keep
// sessions in process memory only.
type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	SessionTTL string `mapstructure:"session_ttl"` // duration string, e.g., "24h"
}

// OpenAIConfig controls the generation service client. APIKey is an optional
// fallback for the CLI path; the web flow takes the key from the form and
// never persists it.
type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Timeout   string `mapstructure:"timeout"` // duration string, e.g., "120s"
}

// SearchConfig controls the optional web-search augmenter.
type SearchConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	BaseURL    string `mapstructure:"base_url"` // SearxNG-compatible endpoint
	MaxResults int    `mapstructure:"max_results"`
}

// BrandDefaults seeds a new session's branding before the operator edits it.
type BrandDefaults struct {
	OrgName      string   `mapstructure:"org_name"`
	Tagline      string   `mapstructure:"tagline"`
	Website      string   `mapstructure:"website"`
	LogoURL      string   `mapstructure:"logo_url"`
	PrimaryColor string   `mapstructure:"primary_color"`
	AccentColor  string   `mapstructure:"accent_color"`
	TextColor    string   `mapstructure:"text_color"`
	MutedColor   string   `mapstructure:"muted_color"`
	SectionNames []string `mapstructure:"section_names"`
}

// Config is the top-level configuration structure.
type Config struct {
	App    AppConfig     `mapstructure:"app"`
	Server ServerConfig  `mapstructure:"server"`
	Redis  RedisConfig   `mapstructure:"redis"`
	OpenAI OpenAIConfig  `mapstructure:"openai"`
	Search SearchConfig  `mapstructure:"search"`
	Brand  BrandDefaults `mapstructure:"brand"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Redis.SessionTTL == "" {
		c.Redis.SessionTTL = "24h"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o"
	}
	if c.OpenAI.MaxTokens == 0 {
		c.OpenAI.MaxTokens = 2000
	}
	if c.OpenAI.Timeout == "" {
		c.OpenAI.Timeout = "120s"
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = 3
	}
	if c.Brand.OrgName == "" {
		c.Brand.OrgName = "Community Hero PA"
	}
	if c.Brand.Tagline == "" {
		c.Brand.Tagline = "Health • Wealth • Civic Power"
	}
	if c.Brand.PrimaryColor == "" {
		c.Brand.PrimaryColor = "#2C3E50"
	}
	if c.Brand.AccentColor == "" {
		c.Brand.AccentColor = "#F7C548"
	}
	if c.Brand.TextColor == "" {
		c.Brand.TextColor = "#2C3E50"
	}
	if c.Brand.MutedColor == "" {
		c.Brand.MutedColor = "#7C7C7C"
	}
	if len(c.Brand.SectionNames) == 0 {
		c.Brand.SectionNames = []string{"Health", "Wealth", "Civic Engagement"}
	}
}
