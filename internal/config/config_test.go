package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ListenAddr != ":8049" {
		t.Errorf("ListenAddr: want :8049, got %s", cfg.ListenAddr)
	}
	if cfg.Backend != BackendCSV {
		t.Errorf("Backend: want csv, got %s", cfg.Backend)
	}
	home, _ := os.UserHomeDir()
	wantDataDir := filepath.Join(home, ".issuetrack")
	if cfg.DataDir != wantDataDir {
		t.Errorf("DataDir: want %s, got %s", wantDataDir, cfg.DataDir)
	}
	wantCSV := filepath.Join(wantDataDir, "issues.csv")
	if cfg.CSVPath != wantCSV {
		t.Errorf("CSVPath: want %s, got %s", wantCSV, cfg.CSVPath)
	}
}

func TestExpandHomeWithTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	got := expandHome("~/foo")
	want := filepath.Join(home, "foo")
	if got != want {
		t.Errorf("expandHome(~/foo): want %s, got %s", want, got)
	}
}

func TestExpandHomeAbsolute(t *testing.T) {
	got := expandHome("/absolute/path")
	if got != "/absolute/path" {
		t.Errorf("expandHome(/absolute/path): want /absolute/path, got %s", got)
	}
}

func validConfig() *Config {
	return &Config{
		ListenAddr: ":8049",
		DataDir:    "/tmp/issuetrack",
		Backend:    BackendCSV,
	}
}

func TestValidateValid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidateEmptyListenAddr(t *testing.T) {
	cfg := validConfig()
	cfg.ListenAddr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty listen_addr")
	}
}

func TestValidateInvalidPortZero(t *testing.T) {
	cfg := validConfig()
	cfg.ListenAddr = ":0"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}
}

func TestValidateInvalidPortNonNumeric(t *testing.T) {
	cfg := validConfig()
	cfg.ListenAddr = ":abc"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestValidateEmptyDataDir(t *testing.T) {
	cfg := validConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty data_dir")
	}
}

func TestValidateUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Backend = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestValidateGSheetRequiresIDAndCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Backend = BackendGSheet
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for gsheet backend without spreadsheet id")
	}

	cfg.GSheet.SpreadsheetID = "1abc"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for gsheet backend without credentials file")
	}

	cfg.GSheet.CredentialsFile = "/etc/issuetrack/sa.json"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid gsheet config, got %v", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{
		ListenAddr: ":9999",
		DataDir:    tmpDir,
		Backend:    BackendSQLite,
		DBPath:     filepath.Join(tmpDir, "test.db"),
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Read back directly.
	data, err := os.ReadFile(filepath.Join(tmpDir, "config.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if loaded.ListenAddr != cfg.ListenAddr {
		t.Errorf("ListenAddr: want %s, got %s", cfg.ListenAddr, loaded.ListenAddr)
	}
	if loaded.Backend != cfg.Backend {
		t.Errorf("Backend: want %s, got %s", cfg.Backend, loaded.Backend)
	}
	if loaded.DBPath != cfg.DBPath {
		t.Errorf("DBPath: want %s, got %s", cfg.DBPath, loaded.DBPath)
	}
}

func TestEnsureDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "nested", "data")
	cfg := &Config{DataDir: subDir}

	if err := EnsureDataDir(cfg); err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}

	info, err := os.Stat(subDir)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected directory")
	}
}
