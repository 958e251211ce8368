package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so a stray .env in the
// repository cannot leak into it.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	for _, key := range []string{env_url, env_user, env_pass} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadFromFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		base_url: "https://sinetsur.example.cl/Login.aspx",
		username: "file-user",
		password: "file-pass",
		cloudflare_bypass: true,
		email: {
			smtp_host: "smtp.example.cl",
			smtp_port: 587,
			from: "bot@example.cl",
			to: ["guardia@example.cl"],
		},
	}`), 0600))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://sinetsur.example.cl/Login.aspx", cfg.BaseUrl)
	require.Equal(t, "file-user", cfg.Username)
	require.True(t, cfg.CloudflareBypass)
	require.True(t, cfg.Email.Enabled())
	require.Equal(t, []string{"guardia@example.cl"}, cfg.Email.To)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		base_url: "https://old.example.cl",
		username: "file-user",
		password: "file-pass",
	}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"SINETSUR_USER=dotenv-user\nSINETSUR_PASS=dotenv-pass\n",
	), 0600))
	t.Setenv(env_pass, "env-pass")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://old.example.cl", cfg.BaseUrl)
	require.Equal(t, "dotenv-user", cfg.Username)
	// the real environment wins over .env
	require.Equal(t, "env-pass", cfg.Password)
	require.False(t, cfg.Email.Enabled())
}

func TestLoadEnvOnly(t *testing.T) {
	inTempDir(t)
	t.Setenv(env_url, "http://10.0.0.1/Login.aspx")
	t.Setenv(env_user, "u")
	t.Setenv(env_pass, "p")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.1/Login.aspx", cfg.BaseUrl)
}

func TestValidate(t *testing.T) {
	valid := Config{BaseUrl: "https://example.cl", Username: "u", Password: "p"}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "missing url", modify: func(c *Config) { c.BaseUrl = "" }},
		{name: "bad scheme", modify: func(c *Config) { c.BaseUrl = "ftp://example.cl" }},
		{name: "no host", modify: func(c *Config) { c.BaseUrl = "https://" }},
		{name: "missing user", modify: func(c *Config) { c.Username = "" }},
		{name: "missing password", modify: func(c *Config) { c.Password = "" }},
		{name: "email without recipients", modify: func(c *Config) {
			c.Email = EmailConfig{SmtpHost: "smtp.example.cl", From: "a@example.cl"}
		}},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid
			test.modify(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadReportsEveryMissingField(t *testing.T) {
	inTempDir(t)
	_, err := Load("")
	require.ErrorContains(t, err, "base_url")
	require.ErrorContains(t, err, "username")
	require.ErrorContains(t, err, "password")
}
