package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/dictate/internal/config"
	"github.com/verte-zerg/dictate/internal/model"
)

func TestCheckTextOutput(t *testing.T) {
	var buf bytes.Buffer
	report := buildCheckReport("I like big cats.", "I like small cats", false)
	if err := writeCheckReport(&buf, report, "text"); err != nil {
		t.Fatalf("write report: %v", err)
	}
	want := strings.Join([]string{
		"i like ~small~ [big] cats",
		"Score 3/4 · 1 incorrect",
		"WER 0.25 (1 substituted, 0 inserted, 0 deleted)",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCheckJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	report := buildCheckReport("The parcel was received", "the parcel was recieved", true)
	if err := writeCheckReport(&buf, report, "json"); err != nil {
		t.Fatalf("write report: %v", err)
	}
	var decoded checkReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Score != 3 || decoded.MaxScore != 4 || decoded.IncorrectCount != 1 {
		t.Fatalf("unexpected scores: %+v", decoded)
	}
	if len(decoded.Hints) != 1 || decoded.Hints[0].Expected != "received" {
		t.Fatalf("expected a spelling hint, got %+v", decoded.Hints)
	}
}

func TestCheckYAMLOutput(t *testing.T) {
	var buf bytes.Buffer
	report := buildCheckReport("a b", "a", false)
	if err := writeCheckReport(&buf, report, "yaml"); err != nil {
		t.Fatalf("write report: %v", err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if decoded["score"] != 1 || decoded["max_score"] != 2 {
		t.Fatalf("unexpected yaml: %s", buf.String())
	}
	if _, ok := decoded["hints"]; ok {
		t.Fatalf("hints should be omitted when disabled: %s", buf.String())
	}
}

func TestCheckUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCheckReport(&buf, buildCheckReport("a", "a", false), "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestApplyPracticeConfigRespectsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[practice]\nset = \"exam\"\nflash = \"5s\"\nhints = true\nweak-top = 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	root := newRootCmd()
	if err := root.Flags().Set("weak-top", "12"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := applyPracticeConfig(root, fileCfg.Practice); err != nil {
		t.Fatalf("apply config: %v", err)
	}
	if practiceSet != "exam" || practiceFlash != 5*time.Second || !practiceHints {
		t.Fatalf("config values not applied: set=%q flash=%v hints=%v", practiceSet, practiceFlash, practiceHints)
	}
	if practiceWeakTop != 12 {
		t.Fatalf("expected flag to win, got weak-top %d", practiceWeakTop)
	}
	if practiceLevel != defaultLevel {
		t.Fatalf("expected default level, got %q", practiceLevel)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template should decode: %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := model.Config{Set: "starter", Level: "short", Flash: time.Second, WeakFactor: 2}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	tests := []struct {
		name string
		cfg  model.Config
	}{
		{name: "empty set", cfg: model.Config{Level: "all"}},
		{name: "path set", cfg: model.Config{Set: "../x", Level: "all"}},
		{name: "bad level", cfg: model.Config{Set: "a", Level: "medium"}},
		{name: "negative flash", cfg: model.Config{Set: "a", Flash: -time.Second}},
		{name: "negative weak top", cfg: model.Config{Set: "a", WeakTop: -1}},
		{name: "negative weak factor", cfg: model.Config{Set: "a", WeakFactor: -1}},
		{name: "negative weak window", cfg: model.Config{Set: "a", WeakWindow: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateConfig(tc.cfg); err == nil {
				t.Fatalf("expected error for %+v", tc.cfg)
			}
		})
	}
}

func TestLoadPracticeSetSeedsStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sets", defaultSet+".txt")
	set, err := loadPracticeSet(model.Config{Set: defaultSet, Level: "all"}, path)
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if len(set) != 12 {
		t.Fatalf("expected 12 starter sentences, got %d", len(set))
	}

	if _, err := loadPracticeSet(model.Config{Set: "missing", Level: "all"}, filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing custom set")
	}
}
