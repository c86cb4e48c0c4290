package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Setting keys. Each is also read from the environment as CIRRUS_<KEY>.
const (
	KeyContext         = "context"
	KeyDebug           = "debug"
	KeyOutput          = "output"
	KeyAPIToken        = "api_token"
	KeyCLIPath         = "cli_path"
	KeyMetricsTextfile = "metrics_textfile"
	KeyNotFoundMarkers = "not_found_markers"
)

// Settings are the runtime settings of one invocation
type Settings struct {
	Context         string
	Debug           bool
	Output          string
	APIToken        string
	CLIPath         string
	MetricsTextfile string
	NotFoundMarkers []string
}

// Bind configures v to read settings from the CIRRUS_ environment
func Bind(v *viper.Viper) {
	v.SetEnvPrefix("CIRRUS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyOutput, "table")
}

// LoadSettings reads the settings from v
func LoadSettings(v *viper.Viper) Settings {
	return Settings{
		Context:         v.GetString(KeyContext),
		Debug:           v.GetBool(KeyDebug),
		Output:          v.GetString(KeyOutput),
		APIToken:        v.GetString(KeyAPIToken),
		CLIPath:         v.GetString(KeyCLIPath),
		MetricsTextfile: v.GetString(KeyMetricsTextfile),
		NotFoundMarkers: splitList(v.GetStringSlice(KeyNotFoundMarkers)),
	}
}

// splitList accepts both repeated values and a single comma-separated value
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
