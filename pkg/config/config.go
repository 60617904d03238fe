package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration values
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
	HTTPTimeout    time.Duration

	NotionToken      string
	NotionDatabaseID string
	NotionAPIURL     string
	NotionVersion    string

	KitAPIKey string
	KitAPIURL string

	CheckoutURL        string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	ServiceName  string
	OTelEndpoint string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("NOTION_API_URL", "https://api.notion.com")
	v.SetDefault("NOTION_VERSION", "2022-06-28")
	v.SetDefault("KIT_API_URL", "https://api.kit.com")
	v.SetDefault("CHECKOUT_SUCCESS_URL", "/success")
	v.SetDefault("CHECKOUT_CANCEL_URL", "/")
	v.SetDefault("SERVICE_NAME", "emdash-brief")
}

// LoadConfig reads configuration from environment variables. Credentials are
// not validated here: a missing token only fails the call that needs it.
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	timeout := v.GetDuration("HTTP_TIMEOUT")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Config{
		Port:           v.GetString("PORT"),
		GinMode:        v.GetString("GIN_MODE"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		HTTPTimeout:    timeout,

		NotionToken:      strings.TrimSpace(v.GetString("NOTION_TOKEN")),
		NotionDatabaseID: strings.TrimSpace(v.GetString("NOTION_DATABASE_ID")),
		NotionAPIURL:     strings.TrimRight(v.GetString("NOTION_API_URL"), "/"),
		NotionVersion:    v.GetString("NOTION_VERSION"),

		KitAPIKey: strings.TrimSpace(v.GetString("KIT_API_KEY")),
		KitAPIURL: strings.TrimRight(v.GetString("KIT_API_URL"), "/"),

		CheckoutURL:        strings.TrimSpace(v.GetString("CHECKOUT_URL")),
		CheckoutSuccessURL: v.GetString("CHECKOUT_SUCCESS_URL"),
		CheckoutCancelURL:  v.GetString("CHECKOUT_CANCEL_URL"),

		ServiceName:  v.GetString("SERVICE_NAME"),
		OTelEndpoint: strings.TrimSpace(v.GetString("OTEL_ENDPOINT")),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
