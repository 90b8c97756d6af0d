package configs

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvConfig holds the values read straight from the process environment.
type EnvConfig struct {
	ApplicationName string
	// SSLVerify is false only when SSL_VERIFY is "false" (any case).
	SSLVerify bool
}

var Env *EnvConfig

func init() {
	Env = Load()
}

// Load reads an optional .env file and then the environment.
func Load() *EnvConfig {
	_ = godotenv.Load()
	viper.AutomaticEnv()

	return &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "weather"),
		SSLVerify:       ParseSSLVerify(viper.GetString("SSL_VERIFY")),
	}
}

// ParseSSLVerify reports whether certificates must be verified for the given SSL_VERIFY value.
func ParseSSLVerify(value string) bool {
	return !strings.EqualFold(value, "false")
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
