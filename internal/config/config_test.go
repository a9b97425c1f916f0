package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestConfigParsing(t *testing.T) {
	configContent := `# Global options
log.level debug
mouse false

[run]
log.level warn
message.ttl   10s

[profiles]
`

	config, err := LoadFromReader(strings.NewReader(configContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if value, ok := config.Get("", "log.level"); !ok || value != "debug" {
		t.Errorf("Expected log.level=debug, got %q (exists: %v)", value, ok)
	}
	if value, ok := config.Get("run", "log.level"); !ok || value != "warn" {
		t.Errorf("Expected run log.level=warn, got %q (exists: %v)", value, ok)
	}
	if value, ok := config.Get("run", "message.ttl"); !ok || value != "10s" {
		t.Errorf("Expected run message.ttl=10s, got %q (exists: %v)", value, ok)
	}
	if value, ok := config.Get("run", "mouse"); !ok || value != "false" {
		t.Errorf("Expected run mouse=false (fallback), got %q (exists: %v)", value, ok)
	}
	if _, ok := config.Sections["profiles"]; !ok {
		t.Errorf("Expected empty [profiles] section to be recorded")
	}
	if value, ok := config.Get("nonexistent", "option"); ok {
		t.Errorf("Expected nonexistent option to not exist, but got %q", value)
	}
	if len(config.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", config.Warnings)
	}
	if got := config.SectionNames(); len(got) != 2 || got[0] != "profiles" || got[1] != "run" {
		t.Errorf("Expected sections [profiles run], got %v", got)
	}
}

func TestEmptyConfig(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader("\n# only a comment\n\n"))
	if err != nil {
		t.Fatalf("Failed to load empty config: %v", err)
	}
	if len(config.Global) != 0 || len(config.Sections) != 0 {
		t.Errorf("Expected empty config, got %v %v", config.Global, config.Sections)
	}
}

func TestConfigOptionWithoutValue(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader("save.root\n"))
	if err != nil {
		t.Fatal(err)
	}
	if value, ok := config.Get("", "save.root"); !ok || value != "" {
		t.Errorf("Expected save.root to be set and empty, got %q (exists: %v)", value, ok)
	}
}

func TestConfigWarnings(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader("colour auto\nmouse maybe\n[run]\nmessage.ttl soon\n"))
	if err != nil {
		t.Fatal(err)
	}
	warnings := config.Warnings
	if len(warnings) != 3 {
		t.Fatalf("Expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	for _, want := range []string{`"colour"`, `"mouse"`, `"message.ttl" in [run]`} {
		found := false
		for _, w := range warnings {
			if strings.Contains(w, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected a warning mentioning %s, got %v", want, warnings)
		}
	}
}

func TestConfigMalformedSection(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader("mouse false\n[run\nmouse true\n[profiles]\nsave.root /saves\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Warnings) != 1 || !strings.Contains(config.Warnings[0], "line 2: malformed section header") {
		t.Fatalf("Expected one malformed header warning, got %v", config.Warnings)
	}
	if value, _ := config.Get("", "mouse"); value != "false" {
		t.Errorf("Expected options under a malformed header to be skipped, got mouse=%q", value)
	}
	if value, _ := config.Get("profiles", "save.root"); value != "/saves" {
		t.Errorf("Expected parsing to resume at the next section, got %q", value)
	}
}

func TestConfigDuplicateKey(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader("[run]\nlog.level debug\nlog.level warn\n"))
	if err != nil {
		t.Fatal(err)
	}
	if value, _ := config.Get("run", "log.level"); value != "warn" {
		t.Errorf("Expected the last value to win, got %q", value)
	}
	if len(config.Warnings) != 1 || !strings.Contains(config.Warnings[0], `line 3: "log.level" repeated in [run]`) {
		t.Errorf("Expected a duplicate warning, got %v", config.Warnings)
	}
}

func TestConfigGetSet(t *testing.T) {
	config := NewConfig()
	config.Set("", "mouse", "false")
	config.Set("run", "mouse", "true")

	for _, tc := range []struct {
		command, want string
	}{
		{"", "false"},
		{"run", "true"},
		{"profiles", "false"},
	} {
		if value, ok := config.Get(tc.command, "mouse"); !ok || value != tc.want {
			t.Errorf("Get(%q, mouse) = %q, %v; want %q", tc.command, value, ok, tc.want)
		}
	}
	if _, ok := config.Sections["profiles"]; ok {
		t.Error("Expected Get not to create sections")
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	config, err := LoadFromPath(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if len(config.Global) != 0 {
		t.Errorf("Expected empty config, got %v", config.Global)
	}
}

func TestLoadFromPathRejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.WriteFile(target, []byte("mouse false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "config")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(link); err == nil || !strings.Contains(err.Error(), "symlink") {
		t.Fatalf("Expected symlink error, got %v", err)
	}
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{
		"true": true, "TRUE": true, "1": true, "yes": true, "On": true,
		"false": false, "0": false, "no": false, "OFF": false,
	} {
		got, err := parseBool(in)
		if err != nil || got != want {
			t.Errorf("parseBool(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseBool("maybe"); err == nil {
		t.Error("Expected error for invalid bool")
	}
}
