package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Context represents one management endpoint configuration
type Context struct {
	Endpoint        string   `yaml:"endpoint"`                    // API base URL
	Project         string   `yaml:"project,omitempty"`           // Default project ID
	CLIPath         string   `yaml:"cli_path,omitempty"`          // Cluster tool binary
	CLIArgs         []string `yaml:"cli_args,omitempty"`          // Arguments placed before every tool command
	ClusterType     string   `yaml:"cluster_type,omitempty"`      // Subtype managed through the tool
	TokenSecret     string   `yaml:"token_secret,omitempty"`      // AWS Secrets Manager id holding the API token
	AWSProfile      string   `yaml:"aws_profile,omitempty"`       // Profile used to read TokenSecret
	AWSRegion       string   `yaml:"aws_region,omitempty"`        // Region used to read TokenSecret
	NotFoundMarkers []string `yaml:"not_found_markers,omitempty"` // Overrides the tool's not-found markers
	OAuth           *OAuth   `yaml:"oauth,omitempty"`             // Client credentials used instead of a static token
}

// OAuth holds OAuth2 client credentials for the API
type OAuth struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	TokenURL     string   `yaml:"token_url"`
	Scopes       []string `yaml:"scopes,omitempty"`
}

// Defaults represents default settings
type Defaults struct {
	Output string `yaml:"output,omitempty"` // table, json, yaml
}

// File represents the main configuration file (~/.cirrus.yaml)
type File struct {
	CurrentContext string              `yaml:"current_context,omitempty"`
	Contexts       map[string]*Context `yaml:"contexts,omitempty"`
	Defaults       *Defaults           `yaml:"defaults,omitempty"`
}

// GetConfigPath returns the config file path. CIRRUS_CONFIG overrides the
// default ~/.cirrus.yaml.
func GetConfigPath() string {
	if p := os.Getenv("CIRRUS_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cirrus.yaml"
	}
	return filepath.Join(home, ".cirrus.yaml")
}

func newFile() *File {
	return &File{
		Contexts: make(map[string]*Context),
		Defaults: &Defaults{Output: "table"},
	}
}

// Load loads the configuration file, returning defaults when it is missing
func Load() (*File, error) {
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return newFile(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg File
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = &Defaults{Output: "table"}
	}
	return &cfg, nil
}

// Save writes the configuration file
func Save(cfg *File) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetCurrentContext returns the current active context
func GetCurrentContext() (*Context, string, error) {
	cfg, err := Load()
	if err != nil {
		return nil, "", err
	}

	if cfg.CurrentContext == "" {
		return nil, "", nil
	}

	ctx := cfg.Contexts[cfg.CurrentContext]
	if ctx == nil {
		return nil, "", fmt.Errorf("context %q not found", cfg.CurrentContext)
	}
	return ctx, cfg.CurrentContext, nil
}

// ResolveContext returns the named context, or the current one when name is
// empty
func ResolveContext(name string) (*Context, string, error) {
	if name == "" {
		ctx, current, err := GetCurrentContext()
		if err != nil {
			return nil, "", err
		}
		if ctx == nil {
			return nil, "", fmt.Errorf("no context set. Use 'crs use <context>' to set one")
		}
		return ctx, current, nil
	}

	cfg, err := Load()
	if err != nil {
		return nil, "", err
	}
	ctx := cfg.Contexts[name]
	if ctx == nil {
		return nil, "", fmt.Errorf("context %q not found", name)
	}
	return ctx, name, nil
}

// SetCurrentContext sets the current active context
func SetCurrentContext(name string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	if cfg.Contexts[name] == nil {
		return fmt.Errorf("context %q not found", name)
	}

	cfg.CurrentContext = name
	return Save(cfg)
}

// AddContext adds or updates a context
func AddContext(name string, ctx *Context) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.Contexts[name] = ctx
	return Save(cfg)
}

// DeleteContext removes a context
func DeleteContext(name string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	delete(cfg.Contexts, name)

	// Clear current context if it was the deleted one
	if cfg.CurrentContext == name {
		cfg.CurrentContext = ""
	}
	return Save(cfg)
}

// ListContexts returns all configured contexts
func ListContexts() (map[string]*Context, string, error) {
	cfg, err := Load()
	if err != nil {
		return nil, "", err
	}
	return cfg.Contexts, cfg.CurrentContext, nil
}
