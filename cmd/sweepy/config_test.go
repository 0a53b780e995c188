package main

import (
	"os"
	"path/filepath"
	"testing"

	"sweepy/internal/config"
)

func TestRunConfigInit_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweepy.yaml")

	origPath, origForce := configInitPath, configInitForce
	configInitPath, configInitForce = path, false
	defer func() { configInitPath, configInitForce = origPath, origForce }()

	if err := runConfigInit(configInitCmd, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if len(loaded.Extensions) == 0 {
		t.Error("loaded config has no extensions")
	}
}

func TestRunConfigInit_RefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweepy.yaml")
	if err := os.WriteFile(path, []byte("custom: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	origPath, origForce := configInitPath, configInitForce
	configInitPath, configInitForce = path, false
	defer func() { configInitPath, configInitForce = origPath, origForce }()

	if err := runConfigInit(configInitCmd, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "custom: true\n" {
		t.Error("existing config file was overwritten without --force")
	}
}
