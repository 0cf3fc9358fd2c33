package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Market.RiskFreeRate != 0.0342 {
		t.Fatalf("risk_free_rate default = %v, want 0.0342", cfg.Market.RiskFreeRate)
	}
	if cfg.Market.LotSize != 50 {
		t.Fatalf("lot_size default = %d, want 50", cfg.Market.LotSize)
	}
	if cfg.Payoff.Samples != 200 || cfg.Payoff.RangeFraction != 0.1 {
		t.Fatalf("payoff defaults = %d/%v, want 200/0.1", cfg.Payoff.Samples, cfg.Payoff.RangeFraction)
	}
	if cfg.Dates.Layout != "02-01-2006" {
		t.Fatalf("date layout default = %q", cfg.Dates.Layout)
	}
	if cfg.Slack.Enabled {
		t.Fatal("slack must be disabled by default")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "market:\n  lot_size: 75\npayoff:\n  samples: 500\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.LotSize != 75 {
		t.Fatalf("lot_size = %d, want 75", cfg.Market.LotSize)
	}
	if cfg.Payoff.Samples != 500 {
		t.Fatalf("samples = %d, want 500", cfg.Payoff.Samples)
	}
	// Untouched keys keep their defaults.
	if cfg.Market.RiskFreeRate != 0.0342 {
		t.Fatalf("risk_free_rate = %v, want default", cfg.Market.RiskFreeRate)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OPTIONALYZER_MARKET_RISK_FREE_RATE", "0.05")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.RiskFreeRate != 0.05 {
		t.Fatalf("risk_free_rate = %v, want env override 0.05", cfg.Market.RiskFreeRate)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"non-positive lot size": "market:\n  lot_size: 0\n",
		"one sample":            "payoff:\n  samples: 1\n",
		"range fraction too big": "payoff:\n  range_fraction: 1.5\n",
		"empty layout":          "dates:\n  layout: \"\"\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			if _, err := Load(dir); err == nil {
				t.Fatal("invalid config must fail validation")
			}
		})
	}
}
