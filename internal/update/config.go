package update

import (
	"os"
	"strings"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type RuntimeConfig struct {
	// Backend selects the slot implementation: "file" (JSON) or "sqlite".
	Backend string
	// SlotPath is the slot file location. Empty means the backend default
	// in the working directory.
	SlotPath string
	// ConfirmDestructive gates delete and clear-completed behind a y/n
	// prompt. Turning it off is meant for scripted runs.
	ConfirmDestructive bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:            BackendFile,
		SlotPath:           "",
		ConfirmDestructive: true,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("LISTD_BACKEND"))); v == BackendFile || v == BackendSQLite {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("LISTD_PATH")); v != "" {
		cfg.SlotPath = v
	}
	if v, ok := getEnvBool("LISTD_CONFIRM"); ok {
		cfg.ConfirmDestructive = v
	}
	return cfg
}

// DefaultSlotPath resolves the slot location for the configured backend.
func (c RuntimeConfig) DefaultSlotPath() string {
	if c.SlotPath != "" {
		return c.SlotPath
	}
	if c.Backend == BackendSQLite {
		return "listd.db"
	}
	return "listd.json"
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
