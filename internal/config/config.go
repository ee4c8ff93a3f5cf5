package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	LogFile string `env:"LOG_FILE" envDefault:"./cempagamez.log"`

	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./web/templates"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"./web/static"`

	// Remote catalog
	CatalogURL      string        `env:"CATALOG_URL" envDefault:"https://gameboxbybear.pythonanywhere.com/api/onennabe"`
	CatalogTimeout  time.Duration `env:"CATALOG_TIMEOUT" envDefault:"15s"`
	RefreshInterval time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"0s"`
	SnapshotDSN     string        `env:"SNAPSHOT_DSN" envDefault:":memory:"`
	// ServeSnapshot puts the last remote catalog between the API and the bundled games.
	ServeSnapshot bool `env:"CATALOG_SERVE_SNAPSHOT" envDefault:"false"`

	// Sessions; empty RedisURL keeps them in process memory.
	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	// Assistant
	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	GeminiModel      string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL    string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	AssistantTimeout time.Duration `env:"ASSISTANT_TIMEOUT" envDefault:"30s"`
	AssistantRPS     float64       `env:"ASSISTANT_RPS" envDefault:"2"`

	// Payment hand-off
	PaymentGatewayURL string `env:"PAYMENT_GATEWAY_URL" envDefault:"https://payment.tngdigital.com.my/sc/bDLnzfGnwF"`
	PaymentQRURL      string `env:"PAYMENT_QR_URL" envDefault:"https://raw.githubusercontent.com/ZackTheGrumpy/CempaGames/refs/heads/main/QR_Payment_Square.png"`
	MessagingBaseURL  string `env:"MESSAGING_BASE_URL" envDefault:"https://wa.me"`
	MerchantID        string `env:"MERCHANT_ID" envDefault:"601162829775"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	log.Printf("[config] PORT=%s CATALOG_URL=%s SNAPSHOT_DSN=%s REDIS=%t GEMINI_API_KEY=%s LOG_FILE=%s",
		cfg.Port, cfg.CatalogURL, cfg.SnapshotDSN, cfg.RedisURL != "", mask(cfg.GeminiAPIKey), cfg.LogFile)
	return cfg, nil
}

func (c Config) validate() error {
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("invalid CATALOG_TIMEOUT: %s", c.CatalogTimeout)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("invalid CATALOG_REFRESH_INTERVAL: %s", c.RefreshInterval)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL: %s", c.SessionTTL)
	}
	if c.AssistantRPS <= 0 {
		return fmt.Errorf("invalid ASSISTANT_RPS: %v", c.AssistantRPS)
	}
	return nil
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
