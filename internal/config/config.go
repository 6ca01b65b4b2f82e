// Package config provides configuration management for mailbrief.
// It uses Viper to load settings from files and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for mailbrief.
type Config struct {
	// ── Front-end process ────────────────────────────────────────────────────
	// Command is the program that hosts the summarizer UI ("streamlit").
	Command string `mapstructure:"command"`
	// CommandArgs are passed before the script name ("run" for streamlit).
	CommandArgs []string `mapstructure:"command_args"`
	// Script is the external application entrypoint. mailbrief treats it as
	// an opaque file name; it never opens or parses it.
	Script  string `mapstructure:"script"`
	WorkDir string `mapstructure:"work_dir"`
	// UIPort (8501): streamlit's default serving port, used by `status`.
	UIPort int `mapstructure:"ui_port"`

	// ── Files the downstream application expects in WorkDir ─────────────────
	// CredentialsFile: OAuth client secrets downloaded from Google Cloud Console.
	CredentialsFile string `mapstructure:"credentials_file"`
	// EnvFile: dotenv file carrying OPENAI_API_KEY.
	EnvFile string `mapstructure:"env_file"`
	// TokenFile: cached Gmail OAuth token, written by the app on first login.
	TokenFile string `mapstructure:"token_file"`
}

// Load reads config from file (./config.yaml or ~/.mailbrief/config.yaml)
// and falls back to smart defaults. Environment variables with prefix
// MAILBRIEF_ override file values.
func Load() (*Config, error) {
	v := viper.New()

	// --- Smart Defaults ---
	v.SetDefault("command", "streamlit")
	v.SetDefault("command_args", []string{"run"})
	v.SetDefault("script", "gmail_ai_summarizer.py")
	v.SetDefault("work_dir", ".")
	v.SetDefault("ui_port", 8501) // streamlit default

	v.SetDefault("credentials_file", "credentials.json")
	v.SetDefault("env_file", ".env")
	v.SetDefault("token_file", "token.json")

	// --- Config file ---
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.mailbrief")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("MAILBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
