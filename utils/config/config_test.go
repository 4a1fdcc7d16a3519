package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

type TestConfig struct {
	LogLevel   string `json:"log_level"`
	TlbEntries int    `json:"tlb_entries"`
	DumpPath   string `json:"dump_path"`
}

func TestSetupConfig(t *testing.T) {
	tempFile, err := os.CreateTemp("", "testconfig")

	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}

	defer os.Remove(tempFile.Name())

	validConfig := TestConfig{LogLevel: "DEBUG", TlbEntries: 4}
	json.NewEncoder(tempFile).Encode(validConfig)
	tempFile.Close()

	var config TestConfig
	err = setupConfig(tempFile.Name(), &config)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if config != validConfig {
		t.Errorf("Expected config to be %v, got: %v", validConfig, config)
	}
}

func TestSetupConfig_ThrowError(t *testing.T) {
	err := setupConfig("nonexistent.json", &TestConfig{})
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memoria.json")
	if err := os.WriteFile(path, []byte(`{"tlb_entries": 8}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config := TestConfig{LogLevel: "INFO", DumpPath: "./dumps"}
	if err := LoadConfig(path, &config); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.TlbEntries != 8 {
		t.Errorf("Expected tlb_entries 8, got %d", config.TlbEntries)
	}
	if config.LogLevel != "INFO" || config.DumpPath != "./dumps" {
		t.Errorf("Expected defaults to survive, got %+v", config)
	}
}

func TestLoadConfig_InvalidJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memoria.json")
	if err := os.WriteFile(path, []byte(`{"tlb_entries": "ocho"`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := LoadConfig(path, &TestConfig{}); err == nil {
		t.Error("Expected error for malformed json, got nil")
	}
}

func TestInitConfig_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected InitConfig to panic on missing file")
		}
	}()
	InitConfig("nonexistent.json", &TestConfig{})
}
