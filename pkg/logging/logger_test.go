package logging

import (
	"os"
	"path/filepath"
	"testing"

	"radarcompose/pkg/config"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "radarcompose.log")

	cfg := &config.LogConfig{
		Path:  logPath,
		Level: "DEBUG",
	}

	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer cleanup()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("log file not created")
	}
}

func TestInit_Stdout(t *testing.T) {
	cfg := &config.LogConfig{Level: "INFO"}

	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer cleanup()
}
