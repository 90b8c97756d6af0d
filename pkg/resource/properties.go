package resource

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"

	"weather-mcp/configs"
)

var properties = viper.New()
var envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)

// init loads application properties from PROPERTIES_FILE_PATH or the embedded defaults
func init() {
	var err error
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		err = Init(value)
	} else {
		err = Load(bytes.NewReader(configs.ApplicationYAML))
	}
	if err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
}

// Init replaces the loaded properties with the YAML file at filepath.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", filepath, err)
	}
	apply(v)
	return nil
}

// Load replaces the loaded properties with the YAML document read from r.
func Load(r io.Reader) error {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return fmt.Errorf("read properties: %w", err)
	}
	apply(v)
	return nil
}

func apply(v *viper.Viper) {
	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)

	next := viper.New()
	for key, value := range resolved {
		next.Set(key, value)
	}
	properties = next
}

// parsePropertiesMap flattens the YAML tree into dotted keys, resolving ${ENV:default} placeholders
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case []any:
			result[fullKey] = v
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable replaces every ${NAME} or ${NAME:default} in value
func resolveEnvVariable(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(placeholder string) string {
		matches := envPattern.FindStringSubmatch(placeholder)
		if envValue, exists := os.LookupEnv(matches[1]); exists && envValue != "" {
			return envValue
		}
		return matches[2]
	})
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetUint32(key string) uint32 {
	return properties.GetUint32(key)
}
