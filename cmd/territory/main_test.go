package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/territory/internal/config"
)

func TestParseParamGrid(t *testing.T) {
	names, ranges, err := parseParamGrid([]string{"mutation_strength=1, 2,4", "species=3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "mutation_strength" || names[1] != "species" {
		t.Fatalf("names = %v", names)
	}
	if len(ranges[0]) != 3 || ranges[0][2] != 4 || ranges[1][0] != 3 {
		t.Errorf("ranges = %v", ranges)
	}

	for _, bad := range [][]string{nil, {"species"}, {"=1"}, {"species=x"}} {
		if _, _, err := parseParamGrid(bad); err == nil {
			t.Errorf("parseParamGrid(%q) should fail", bad)
		}
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("json", "debug"); err != nil {
		t.Error(err)
	}
	if _, err := newLogger("xml", "info"); err == nil {
		t.Error("expected an error for an unknown format")
	}
	if _, err := newLogger("text", "loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func newFlagCmd() (*cobra.Command, *simFlags) {
	cmd := &cobra.Command{Use: "test"}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "")
	return cmd, sf
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	fileCfg := config.DefaultConfig()
	fileCfg.Width = 40
	fileCfg.Species = 5
	if err := config.Save(path, fileCfg); err != nil {
		t.Fatal(err)
	}

	cmd, sf := newFlagCmd()
	if err := cmd.Flags().Parse([]string{"--preset", "rainbow", "--config", path, "--species", "7"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := sf.resolve(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 {
		t.Errorf("width = %d, want config file value 40", cfg.Width)
	}
	if cfg.Species != 7 {
		t.Errorf("species = %d, want flag value 7", cfg.Species)
	}
	if cfg.Strategy != fileCfg.Strategy {
		t.Errorf("strategy = %s, config file should win over preset", cfg.Strategy)
	}
}

func TestResolvePreset(t *testing.T) {
	cmd, sf := newFlagCmd()
	if err := cmd.Flags().Parse([]string{"--preset", "mirror", "--width", "32"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := sf.resolve(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Strategy != "mirror" || cfg.Width != 32 {
		t.Errorf("cfg = %+v", cfg)
	}

	cmd, sf = newFlagCmd()
	cmd.Flags().Parse([]string{"--preset", "nope"})
	if _, err := sf.resolve(cmd); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestExportRunUnknownFormat(t *testing.T) {
	dataDir = t.TempDir()
	os.MkdirAll(filepath.Join(dataDir, "r"), 0755)
	if err := exportRun("r", "gif", "", 1); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
