package config

import (
	"github.com/BurntSushi/toml"
)

type Config struct {
	BackendURL  string `toml:"BackendURL"`
	APIToken    string `toml:"APIToken"`
	LogFile     string `toml:"LogFile"`
	ColorScheme string `toml:"ColorScheme"`
	UserRole    string `toml:"UserRole"`
	// role the backend tags replies with
	AssistantRole string `toml:"AssistantRole"`
	// TTS
	TTS_ENABLED bool     `toml:"TTS_ENABLED"`
	TTS_SPEED   float32  `toml:"TTS_SPEED"`
	TTS_LANGS   []string `toml:"TTS_LANGS"` // accepted voice language prefixes
	TTS_VOICE   string   `toml:"TTS_VOICE"` // explicit voice pick; empty means first accepted
	// STT
	STT_ENABLED bool   `toml:"STT_ENABLED"`
	STT_URL     string `toml:"STT_URL"`
	STT_SR      int    `toml:"STT_SR"`
	STT_LANG    string `toml:"STT_LANG"`
	// built-in server mode
	DBPATH   string `toml:"DBPATH"`
	LLMAPI   string `toml:"LLMAPI"`
	LLMModel string `toml:"LLMModel"`
	SysMsg   string `toml:"SysMsg"`
}

// LoadConfigOrDefault reads fn and falls back to defaults for every
// field the file leaves empty. A missing file yields a full default
// config; the error is returned for the caller to log.
func LoadConfigOrDefault(fn string) (*Config, error) {
	if fn == "" {
		fn = "config.toml"
	}
	config := &Config{}
	_, err := toml.DecodeFile(fn, &config)
	// if any value is empty fill with default
	if config.BackendURL == "" {
		config.BackendURL = "http://localhost:5000/api/v1"
	}
	if config.LogFile == "" {
		config.LogFile = "chattermind.log"
	}
	if config.UserRole == "" {
		config.UserRole = "user"
	}
	if config.AssistantRole == "" {
		config.AssistantRole = "assistant"
	}
	if config.TTS_SPEED == 0 {
		config.TTS_SPEED = 1.0
	}
	if len(config.TTS_LANGS) == 0 {
		config.TTS_LANGS = []string{"en", "hi", "bn"}
	}
	if config.STT_URL == "" {
		config.STT_URL = "http://localhost:8081/inference"
	}
	if config.STT_SR == 0 {
		config.STT_SR = 16000
	}
	if config.STT_LANG == "" {
		config.STT_LANG = "en"
	}
	if config.DBPATH == "" {
		config.DBPATH = "chattermind.db"
	}
	if config.LLMAPI == "" {
		config.LLMAPI = "http://localhost:8080/v1/chat/completions"
	}
	if config.SysMsg == "" {
		config.SysMsg = "You are a helpful assistant. Keep replies short and conversational."
	}
	return config, err
}
