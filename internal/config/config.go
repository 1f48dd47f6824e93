package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// TranslateTimeout bounds every single translation engine call.
	TranslateTimeout time.Duration `mapstructure:"translate_timeout" yaml:"translate_timeout"`
	// MaxMessageChars caps outbound message length after translation.
	MaxMessageChars int `mapstructure:"max_message_chars" yaml:"max_message_chars"`
	// FanoutLimit bounds concurrent per-recipient deliveries of one broadcast.
	FanoutLimit int `mapstructure:"fanout_limit" yaml:"fanout_limit"`
	// SendQueueSize is the per-client outbound buffer; overflow drops the message.
	SendQueueSize int `mapstructure:"send_queue_size" yaml:"send_queue_size"`

	// ASRURL is the transcription service endpoint; empty disables audio uploads.
	ASRURL string `mapstructure:"asr_url" yaml:"asr_url"`
	// MaxUploadBytes caps the accepted audio upload size.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`

	// TranslateEndpoints maps a direction key ("vi-en") to an engine URL.
	// Directions without an entry (or with an empty URL) fall back to passthrough.
	TranslateEndpoints map[string]string `mapstructure:"translate_endpoints" yaml:"translate_endpoints"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		TranslateTimeout:  10 * time.Second,
		MaxMessageChars:   2000,
		FanoutLimit:       32,
		SendQueueSize:     16,
		MaxUploadBytes:    16 << 20,
		TranslateEndpoints: map[string]string{
			"vi-en": "",
			"en-vi": "",
			"ja-en": "",
			"en-ja": "",
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.TranslateTimeout != 0 {
		c.TranslateTimeout = other.TranslateTimeout
	}
	if other.MaxMessageChars != 0 {
		c.MaxMessageChars = other.MaxMessageChars
	}
	if other.FanoutLimit != 0 {
		c.FanoutLimit = other.FanoutLimit
	}
	if other.SendQueueSize != 0 {
		c.SendQueueSize = other.SendQueueSize
	}
	if other.ASRURL != "" {
		c.ASRURL = other.ASRURL
	}
	if other.MaxUploadBytes != 0 {
		c.MaxUploadBytes = other.MaxUploadBytes
	}
	if len(other.TranslateEndpoints) != 0 {
		c.TranslateEndpoints = other.TranslateEndpoints
	}
}
