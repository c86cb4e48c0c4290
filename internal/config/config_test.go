package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "cirrus.yaml")
	t.Setenv("CIRRUS_CONFIG", path)
	return path
}

func TestLoadMissingFile(t *testing.T) {
	useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Contexts) != 0 || cfg.Defaults.Output != "table" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestContextLifecycle(t *testing.T) {
	path := useTempConfig(t)

	prod := &Context{
		Endpoint:    "https://cloud.example.com:9000",
		Project:     "p1",
		CLIArgs:     []string{"--non-interactive"},
		ClusterType: "KUBERNETES",
		OAuth:       &OAuth{ClientID: "id", ClientSecret: "secret", TokenURL: "https://auth.example.com/token"},
	}
	if err := AddContext("prod", prod); err != nil {
		t.Fatalf("AddContext: %v", err)
	}
	if err := AddContext("lab", &Context{CLIPath: "/opt/photon"}); err != nil {
		t.Fatalf("AddContext: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode %v, want 0600", info.Mode().Perm())
	}

	if _, _, err := ResolveContext(""); err == nil || !strings.Contains(err.Error(), "no context set") {
		t.Errorf("expected no context error, got %v", err)
	}

	if err := SetCurrentContext("prod"); err != nil {
		t.Fatalf("SetCurrentContext: %v", err)
	}
	got, name, err := ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext: %v", err)
	}
	if name != "prod" {
		t.Errorf("current context %q, want prod", name)
	}
	if diff := cmp.Diff(prod, got); diff != "" {
		t.Errorf("context mismatch (-want +got):\n%s", diff)
	}

	if _, name, err := ResolveContext("lab"); err != nil || name != "lab" {
		t.Errorf("ResolveContext(lab) = %q, %v", name, err)
	}
	if _, _, err := ResolveContext("missing"); err == nil {
		t.Error("expected error for unknown context")
	}
	if err := SetCurrentContext("missing"); err == nil {
		t.Error("expected error when switching to unknown context")
	}

	if err := DeleteContext("prod"); err != nil {
		t.Fatalf("DeleteContext: %v", err)
	}
	contexts, current, err := ListContexts()
	if err != nil {
		t.Fatalf("ListContexts: %v", err)
	}
	if current != "" {
		t.Errorf("deleting the current context should clear it, got %q", current)
	}
	if _, ok := contexts["lab"]; !ok || len(contexts) != 1 {
		t.Errorf("unexpected contexts %v", contexts)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := useTempConfig(t)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("contexts: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNullContextEntryIsNotFound(t *testing.T) {
	path := useTempConfig(t)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("current_context: prod\ncontexts:\n  prod:\n"), 0600); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"", "prod"} {
		ctx, _, err := ResolveContext(name)
		if err == nil || ctx != nil {
			t.Errorf("ResolveContext(%q) = (%v, %v), want not found", name, ctx, err)
		}
	}
	if err := SetCurrentContext("prod"); err == nil {
		t.Error("expected error when switching to an empty context entry")
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("CIRRUS_CONTEXT", "lab")
	t.Setenv("CIRRUS_DEBUG", "true")
	t.Setenv("CIRRUS_API_TOKEN", "tok")
	t.Setenv("CIRRUS_NOT_FOUND_MARKERS", "NoSuchCluster, NoSuchImage")

	v := viper.New()
	Bind(v)
	got := LoadSettings(v)

	want := Settings{
		Context:         "lab",
		Debug:           true,
		Output:          "table",
		APIToken:        "tok",
		NotFoundMarkers: []string{"NoSuchCluster", "NoSuchImage"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}
