package config

import (
	"errors"
	"fmt"
	"net/url"
	"sinetsur-notifier/lib/configutil"
)

const (
	env_url  = "SINETSUR_URL"
	env_user = "SINETSUR_USER"
	env_pass = "SINETSUR_PASS"
)

// DefaultFile is the config file read when no other is given.
const DefaultFile = "config.json5"

type EmailConfig struct {
	SmtpHost string   `json:"smtp_host"`
	SmtpPort int      `json:"smtp_port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
}

// Enabled reports whether new records should also be sent by e-mail.
func (c EmailConfig) Enabled() bool {
	return c.SmtpHost != ""
}

type Config struct {
	BaseUrl          string      `json:"base_url"`
	Username         string      `json:"username"`
	Password         string      `json:"password"`
	CloudflareBypass bool        `json:"cloudflare_bypass"`
	DumpDir          string      `json:"dump_dir"`
	Email            EmailConfig `json:"email"`
}

// Load builds the configuration from (in increasing priority) the json5
// config file and its .local override, a .env file in the working
// directory and the process environment. Both files are optional.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}

	err := configutil.LoadDotenv(".env")
	if err != nil {
		return Config{}, err
	}

	cfg, err := configutil.ReadOptional[Config](path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	configutil.OverrideFromEnv(&cfg.BaseUrl, env_url)
	configutil.OverrideFromEnv(&cfg.Username, env_user)
	configutil.OverrideFromEnv(&cfg.Password, env_pass)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.BaseUrl == "" {
		errs = append(errs, fmt.Errorf("base_url (or %s) is required", env_url))
	} else if u, err := url.Parse(c.BaseUrl); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url %q is not an http(s) url", c.BaseUrl))
	}
	if c.Username == "" {
		errs = append(errs, fmt.Errorf("username (or %s) is required", env_user))
	}
	if c.Password == "" {
		errs = append(errs, fmt.Errorf("password (or %s) is required", env_pass))
	}
	if c.Email.Enabled() {
		if c.Email.From == "" {
			errs = append(errs, fmt.Errorf("email.from is required when email.smtp_host is set"))
		}
		if len(c.Email.To) == 0 {
			errs = append(errs, fmt.Errorf("email.to is required when email.smtp_host is set"))
		}
	}
	return errors.Join(errs...)
}
