package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	appconfig "github.com/craftui/craftui/internal/config"
)

func TestParseValue(t *testing.T) {
	setupConfigHome(t)

	tests := []struct {
		key, value string
		want       any
		wantErr    string
	}{
		{"motion.animation", "blur-up", "blur-up", ""},
		{"motion.reduced_motion", "true", true, ""},
		{"motion.duration_ms", "300", 300, ""},
		{"tui.theme", "nord", "nord", ""},
		{"motion.reduced_motion", "maybe", nil, "expected true or false"},
		{"tui.sidebar_width", "wide", nil, "expected integer"},
		{"tui.theme", "neon", nil, "invalid theme"},
		{"pr.draft", "true", nil, "unknown configuration key"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := parseValue(tt.key, tt.value)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("parseValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunConfigSet(t *testing.T) {
	setupConfigHome(t)
	configFile := appconfig.ConfigFile()

	cmd, out := newTestCmd()
	if err := runConfigSet(cmd, []string{"motion.animation", "scale"}); err != nil {
		t.Fatalf("runConfigSet() error = %v", err)
	}
	if !strings.Contains(out.String(), "Set motion.animation = scale") {
		t.Errorf("output = %q", out.String())
	}
	if err := runConfigSet(cmd, []string{"tabs.activation_mode", "manual"}); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	if v.GetString("motion.animation") != "scale" {
		t.Errorf("motion.animation = %q, want scale", v.GetString("motion.animation"))
	}
	if v.GetString("tabs.activation_mode") != "manual" {
		t.Error("second set dropped or overwrote the first")
	}

	t.Run("rejects invalid values", func(t *testing.T) {
		cmd, _ := newTestCmd()
		if err := runConfigSet(cmd, []string{"tabs.activation_mode", "eager"}); err == nil {
			t.Error("expected validation error")
		}
		v := viper.New()
		v.SetConfigFile(configFile)
		_ = v.ReadInConfig()
		if v.GetString("tabs.activation_mode") != "manual" {
			t.Error("invalid value was written")
		}
	})
}

func TestRunConfigInit(t *testing.T) {
	setupConfigHome(t)
	configFile := appconfig.ConfigFile()

	cmd, _ := newTestCmd()
	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}

	// The template must load back to the defaults.
	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	cfg, err := appconfig.LoadFrom(v)
	if err != nil {
		t.Fatalf("template does not validate: %v", err)
	}
	if *cfg != *appconfig.Default() {
		t.Errorf("template = %+v, want defaults", *cfg)
	}

	if err := runConfigInit(cmd, nil); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init error = %v", err)
	}
}

func TestRunConfigShow(t *testing.T) {
	setupConfigHome(t)
	appconfig.SetDefaults()

	cmd, out := newTestCmd()
	if err := runConfigShow(cmd, nil); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"motion:", "animation: fade-up", "code_block:", "activation_mode: automatic"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunConfigPath(t *testing.T) {
	setupConfigHome(t)
	cmd, out := newTestCmd()
	if err := runConfigPath(cmd, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "CRAFTUI_MOTION_REDUCED_MOTION") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunConfigEdit(t *testing.T) {
	setupConfigHome(t)
	t.Setenv("EDITOR", "myeditor --wait")

	var gotName string
	var gotArgs []string
	origCommand := execCommand
	execCommand = func(name string, args ...string) *exec.Cmd {
		gotName, gotArgs = name, args
		return origCommand("true")
	}
	t.Cleanup(func() { execCommand = origCommand })

	cmd, _ := newTestCmd()
	if err := runConfigEdit(cmd, nil); err != nil {
		t.Fatalf("runConfigEdit() error = %v", err)
	}
	if gotName != "myeditor" || len(gotArgs) != 2 || gotArgs[0] != "--wait" || gotArgs[1] != appconfig.ConfigFile() {
		t.Errorf("editor = %s %v", gotName, gotArgs)
	}
	if _, err := os.Stat(filepath.Clean(appconfig.ConfigFile())); err != nil {
		t.Errorf("edit did not create the config file: %v", err)
	}
}
