package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/kyoto-db/kyoto/internal/storage"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyAdmin(&cfg.Admin); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Port)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	switch cfg.Engine {
	case storage.EngineSingle:
		return nil
	case storage.EngineSharded:
		if cfg.Shards <= 0 || cfg.Shards&(cfg.Shards-1) != 0 {
			return fmt.Errorf("storage.shards must be a power of 2, got %d", cfg.Shards)
		}
		return nil
	case "":
		return errors.New("storage.engine is required")
	default:
		return fmt.Errorf("storage.engine must be %q or %q, got %q",
			storage.EngineSingle, storage.EngineSharded, cfg.Engine)
	}
}

func verifyAdmin(cfg *AdminSection) error {
	if cfg.RateLimit < 0 {
		return fmt.Errorf("admin.rate_limit must not be negative, got %d", cfg.RateLimit)
	}
	if err := verifyIPList("admin.allow_list", cfg.AllowList); err != nil {
		return err
	}
	return verifyIPList("admin.trusted_proxies", cfg.TrustedProxies)
}

func verifyIPList(key string, entries []string) error {
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			if _, _, err := net.ParseCIDR(entry); err != nil {
				return fmt.Errorf("%s: invalid CIDR %q", key, entry)
			}
			continue
		}
		if net.ParseIP(entry) == nil {
			return fmt.Errorf("%s: invalid IP %q", key, entry)
		}
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}
