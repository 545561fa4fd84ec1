package config

import (
	"os"
	"strconv"
)

type Config struct {
	LogLevel  string
	Rules     string // built-in preset name
	RulesFile string // YAML rule set, wins over Rules
	Format    string // empty means detect from extension
	OutputDir string
	Aliases   string // comma-separated label=speaker pairs for labelled transcripts
	DryRun    bool
}

func Load() Config {
	return Config{
		LogLevel:  envStr("LOG_LEVEL", "info"),
		Rules:     envStr("EBB_RULES", "gemini"),
		RulesFile: envStr("EBB_RULES_FILE", ""),
		Format:    envStr("EBB_FORMAT", ""),
		OutputDir: envStr("EBB_OUTPUT_DIR", "outputs"),
		Aliases:   envStr("EBB_SPEAKER_ALIASES", ""),
		DryRun:    envBool("EBB_DRY_RUN", false),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
