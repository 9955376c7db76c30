package config

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides file settings with the environment.
func (c *Config) ApplyEnv() {
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	if port, err := strconv.Atoi(GetEnv("SSH_PORT", "")); err == nil {
		c.SSH.Port = port
	}
	c.SSH.HostKey = GetEnv("SSH_HOST_KEY", c.SSH.HostKey)
	c.Store.Path = GetEnv("UFO_STORE", c.Store.Path)
	c.Logging.Level = GetEnv("UFO_LOG_LEVEL", c.Logging.Level)
}
