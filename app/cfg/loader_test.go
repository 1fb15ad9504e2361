package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "test_user",
		DBPassword:        "test_password",
		DBName:            "test_db",
		DBSSLMode:         "disable",
		State:             "TX",
		Venue:             "Lodge",
		Source:            "pokeratlas",
		Limit:             10,
		Force:             true,
		Prune:             true,
		VenuesFile:        "./venues.yml",
		WorkerCount:       3,
		HostInterval:      2,
		RequestTimeout:    10,
		FetchRetries:      3,
		SettleDelay:       2,
		Headless:          true,
		Serve:             true,
		Port:              "8080",
		SchedulerInterval: 3600,
		APIAccessKey:      "test-key",
		UserAgent:         "Test Agent",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.DBHost != "localhost" {
		t.Errorf("Expected DB host 'localhost', got '%s'", cfg.DBHost)
	}
	if cfg.State != "TX" {
		t.Errorf("Expected state 'TX', got '%s'", cfg.State)
	}
	if cfg.Venue != "Lodge" {
		t.Errorf("Expected venue 'Lodge', got '%s'", cfg.Venue)
	}
	if cfg.Limit != 10 {
		t.Errorf("Expected limit 10, got %d", cfg.Limit)
	}
	if !cfg.Force {
		t.Error("Expected force to be set")
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if cfg.HostInterval != 2 {
		t.Errorf("Expected host interval 2, got %d", cfg.HostInterval)
	}
	if cfg.SchedulerInterval != 3600 {
		t.Errorf("Expected scheduler interval 3600, got %d", cfg.SchedulerInterval)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestSetAndGet(t *testing.T) {
	cfg := &Cfg{WorkerCount: 7}
	Set(cfg)

	if Get().WorkerCount != 7 {
		t.Errorf("Expected worker count 7, got %d", Get().WorkerCount)
	}
}
