package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fzft/go-resp-decode/resp"
)

const (
	RespCliConfigEnv      = "RESPDUMP_CONFIG"
	RespCliLogLevelEnv    = "RESPDUMP_LOG_LEVEL"
	RespCliStrictEnv      = "RESPDUMP_STRICT"
	RespCliHisFileEnv     = "RESPDUMP_HISTFILE"
	RespCliHisFileDefault = ".respdump_history"
)

type RespCliCfg struct {
	// Output is "standard", "raw", "tree" or empty to pick by terminal.
	Output      string
	Escapes     bool
	Interactive bool
	Limits      resp.Limits
	LogLevel    string
	HistoryFile string
}

func DefaultConfig() RespCliCfg {
	return RespCliCfg{
		Limits:   resp.DefaultLimits(),
		LogLevel: "warn",
	}
}

type fileConfig struct {
	Output           string `toml:"output"`
	Escapes          bool   `toml:"escapes"`
	StrictBulkLength bool   `toml:"strict_bulk_length"`
	MaxDepth         int    `toml:"max_depth"`
	MaxArrayLen      int    `toml:"max_array_len"`
	MaxBulkLen       int    `toml:"max_bulk_len"`
	LogLevel         string `toml:"log_level"`
	HistoryFile      string `toml:"history_file"`
}

// LoadConfig overlays the keys defined in the TOML file at path onto cfg.
func LoadConfig(path string, cfg *RespCliCfg) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("output") {
		if _, err := resp.ParseFormat(raw.Output); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("escapes") {
		cfg.Escapes = raw.Escapes
	}
	if meta.IsDefined("strict_bulk_length") {
		cfg.Limits.StrictBulkLength = raw.StrictBulkLength
	}
	if meta.IsDefined("max_depth") {
		if raw.MaxDepth <= 0 {
			return fmt.Errorf("load config: max_depth must be positive, got %d", raw.MaxDepth)
		}
		cfg.Limits.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("max_array_len") {
		if raw.MaxArrayLen <= 0 {
			return fmt.Errorf("load config: max_array_len must be positive, got %d", raw.MaxArrayLen)
		}
		cfg.Limits.MaxArrayLen = raw.MaxArrayLen
	}
	if meta.IsDefined("max_bulk_len") {
		if raw.MaxBulkLen <= 0 {
			return fmt.Errorf("load config: max_bulk_len must be positive, got %d", raw.MaxBulkLen)
		}
		cfg.Limits.MaxBulkLen = raw.MaxBulkLen
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("history_file") {
		cfg.HistoryFile = strings.TrimSpace(raw.HistoryFile)
	}
	return nil
}

func applyEnvOverrides(cfg *RespCliCfg) {
	if v := strings.TrimSpace(os.Getenv(RespCliLogLevelEnv)); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := parseBool(os.Getenv(RespCliStrictEnv)); ok {
		cfg.Limits.StrictBulkLength = v
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func getDotfilePath(envOverride, dotFilename string) string {
	var dotPath string

	path := os.Getenv(envOverride)
	if path != "" {
		if path == "/dev/null" {
			return ""
		}
		dotPath = path
	} else {
		home := os.Getenv("HOME")
		if home != "" {
			dotPath = fmt.Sprintf("%s/%s", home, dotFilename)
		}
	}
	return dotPath
}
