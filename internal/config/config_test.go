package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if conf.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", conf.ListenAddr)
	}
	if conf.Database.Host != "" {
		t.Errorf("Database.Host = %q, want empty (persistence disabled)", conf.Database.Host)
	}
	if conf.Optimizer.PopulationSize != 50 {
		t.Errorf("Optimizer.PopulationSize = %d, want 50", conf.Optimizer.PopulationSize)
	}
	if conf.Optimizer.Generations != 100 {
		t.Errorf("Optimizer.Generations = %d, want 100", conf.Optimizer.Generations)
	}
	if conf.Optimizer.TargetOccupancy != 0.85 {
		t.Errorf("Optimizer.TargetOccupancy = %v, want 0.85", conf.Optimizer.TargetOccupancy)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PARKFEE_LISTENADDR", ":9090")
	t.Setenv("PARKFEE_DATABASE_HOST", "db.internal")
	t.Setenv("PARKFEE_OPTIMIZER_GENERATIONS", "250")

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if conf.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", conf.ListenAddr)
	}
	if conf.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", conf.Database.Host)
	}
	if conf.Optimizer.Generations != 250 {
		t.Errorf("Optimizer.Generations = %d, want 250", conf.Optimizer.Generations)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parkfee.yaml")
	content := []byte("listenaddr: \":7070\"\ndatabase:\n  host: localhost\n  password: secret\noptimizer:\n  populationsize: 80\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if conf.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want :7070", conf.ListenAddr)
	}
	if conf.Database.Host != "localhost" || conf.Database.Password != "secret" {
		t.Errorf("Database = %+v, want host localhost and password secret", conf.Database)
	}
	if conf.Optimizer.PopulationSize != 80 {
		t.Errorf("Optimizer.PopulationSize = %d, want 80", conf.Optimizer.PopulationSize)
	}
	// File values must not disturb untouched defaults.
	if conf.Optimizer.Generations != 100 {
		t.Errorf("Optimizer.Generations = %d, want the default 100", conf.Optimizer.Generations)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "localhost", Port: "5432", User: "parkfee", Password: "pw", Name: "parkfee", SSLMode: "disable"}
	want := "host=localhost port=5432 user=parkfee password=pw dbname=parkfee sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
