package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates every setting the service reads at boot.
type Config struct {
	Server  ServerConfig
	Chat    ChatConfig
	Storage StorageConfig
	Admin   AdminConfig
	Contact ContactConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := env.ParseAs[ChatConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse chat config: %w", err)
	}
	if chat.TypingDelay <= 0 {
		return nil, fmt.Errorf("invalid CHAT_TYPING_DELAY value %s", chat.TypingDelay)
	}

	storage, err := env.ParseAs[StorageConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse storage config: %w", err)
	}

	admin, err := env.ParseAs[AdminConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse admin config: %w", err)
	}

	contact, err := env.ParseAs[ContactConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse contact config: %w", err)
	}

	return &Config{
		Server:  server,
		Chat:    chat,
		Storage: storage,
		Admin:   admin,
		Contact: contact,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

type serverEnv struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func loadServerConfig() (ServerConfig, error) {
	raw, err := env.ParseAs[serverEnv]()
	if err != nil {
		return ServerConfig{}, fmt.Errorf("parse server config: %w", err)
	}

	addr, err := normalizeAddr(raw.Port)
	if err != nil {
		return ServerConfig{}, err
	}

	origins := make([]string, 0, len(raw.AllowedOrigins))
	for _, o := range raw.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return ServerConfig{Addr: addr, AllowedOrigins: origins}, nil
}

func normalizeAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// ":8080" and "127.0.0.1:8080" are taken as-is.
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// ChatConfig tunes the site assistant.
type ChatConfig struct {
	TypingDelay     time.Duration `env:"CHAT_TYPING_DELAY" envDefault:"1s"`
	SessionIdleTTL  time.Duration `env:"CHAT_SESSION_IDLE_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CHAT_CLEANUP_INTERVAL" envDefault:"10m"`
}

// StorageConfig points at the bbolt database directory.
type StorageConfig struct {
	DataDir string `env:"DATA_DIR" envDefault:"."`
}

// DBPath is the location of the property, admin and lead database.
func (c StorageConfig) DBPath() string {
	return filepath.Join(c.DataDir, "realty.db")
}

// AdminConfig seeds the admin panel account and signs its tokens.
type AdminConfig struct {
	Username    string        `env:"ADMIN_USERNAME"`
	Password    string        `env:"ADMIN_PASSWORD"`
	TokenSecret string        `env:"ADMIN_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`
}

// Enabled reports whether the admin panel can issue tokens.
func (c AdminConfig) Enabled() bool {
	return c.TokenSecret != ""
}

// ContactConfig describes the email relay behind the contact form.
type ContactConfig struct {
	RelayURL   string        `env:"CONTACT_RELAY_URL" envDefault:"https://api.emailjs.com"`
	ServiceID  string        `env:"CONTACT_SERVICE_ID"`
	TemplateID string        `env:"CONTACT_TEMPLATE_ID"`
	PublicKey  string        `env:"CONTACT_PUBLIC_KEY"`
	PrivateKey string        `env:"CONTACT_PRIVATE_KEY"`
	Timeout    time.Duration `env:"CONTACT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether the relay credentials were supplied.
func (c ContactConfig) Enabled() bool {
	return c.RelayURL != "" && c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}
