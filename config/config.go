package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string

	// Demo mode: serve deterministic fixtures instead of calling vendors.
	// Forced on when the record store credentials are absent.
	DemoMode bool

	// Airtable (record store)
	AirtableAPIKey          string
	AirtableBaseID          string
	AirtableLeadsTable      string
	AirtableActivitiesTable string

	// OpenAI (classifier / copywriter)
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int

	// Vapi (telephony)
	VapiAPIKey      string
	VapiAssistantID string
	VapiBaseURL     string

	// n8n (workflow automation)
	N8nHotLeadWebhook       string
	N8nColdLeadWebhook      string
	N8nCallCompletedWebhook string
	N8nWebhookSecret        string

	// Redis (optional soft cache for the score-label vocabulary)
	RedisURL string

	// Sentry
	SentryDSN         string
	SentryEnvironment string

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// API
		APIPort:        getEnv("API_PORT", "8080"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: getEnv("API_ENVIRONMENT", "development"),

		DemoMode: getEnvAsBool("DEMO_MODE", false),

		// Airtable
		AirtableAPIKey:          getEnv("AIRTABLE_API_KEY", ""),
		AirtableBaseID:          getEnv("AIRTABLE_BASE_ID", ""),
		AirtableLeadsTable:      getEnv("AIRTABLE_LEADS_TABLE", "Leads"),
		AirtableActivitiesTable: getEnv("AIRTABLE_ACTIVITIES_TABLE", "Activities"),

		// OpenAI
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITemperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.3),
		OpenAIMaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1000),

		// Vapi
		VapiAPIKey:      getEnv("VAPI_API_KEY", ""),
		VapiAssistantID: getEnv("VAPI_ASSISTANT_ID", ""),
		VapiBaseURL:     getEnv("VAPI_BASE_URL", "https://api.vapi.ai"),

		// n8n
		N8nHotLeadWebhook:       getEnv("N8N_HOT_LEAD_WEBHOOK", ""),
		N8nColdLeadWebhook:      getEnv("N8N_COLD_LEAD_WEBHOOK", ""),
		N8nCallCompletedWebhook: getEnv("N8N_CALL_COMPLETED_WEBHOOK", ""),
		N8nWebhookSecret:        getEnv("N8N_WEBHOOK_SECRET", ""),

		// Redis (empty disables the vocabulary mirror)
		RedisURL: getEnv("REDIS_URL", ""),

		// Sentry
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", getEnv("API_ENVIRONMENT", "development")),

		// CORS
		CORSAllowedOrigins: []string{getEnv("FRONTEND_URL", "http://localhost:3000")},

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 10),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Without record-store credentials every route would fail, so fall back
	// to demo fixtures the way the original dashboard does.
	if cfg.AirtableAPIKey == "" || cfg.AirtableBaseID == "" {
		cfg.DemoMode = true
	}

	return cfg
}

// IsProduction reports whether the API runs in the production environment
func (c *Config) IsProduction() bool {
	return c.APIEnvironment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
