// Package config loads the zonerelayd file configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"xdao.co/zonerelay/relay"
)

// Config is the daemon's runtime configuration.
type Config struct {
	// Listen is the gRPC listen address.
	Listen string
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
	// BtcStakingAddr and NotifyCosmosZone feed the endpoint Config.
	BtcStakingAddr   string
	NotifyCosmosZone bool
}

// Default returns the daemon defaults: local listen, info logging, staking
// routing unconfigured, notifications off.
func Default() Config {
	return Config{
		Listen:   "127.0.0.1:7780",
		LogLevel: "info",
	}
}

// config.toml key mapping to daemon settings.
type fileConfig struct {
	Listen           string `toml:"listen"`
	LogLevel         string `toml:"log_level"`
	BtcStakingAddr   string `toml:"btc_staking_addr"`
	NotifyCosmosZone bool   `toml:"notify_cosmos_zone"`
}

// Load reads a TOML config file over the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("listen") {
		if addr := strings.TrimSpace(raw.Listen); addr != "" {
			cfg.Listen = addr
		}
	}
	if meta.IsDefined("log_level") {
		if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
			cfg.LogLevel = lvl
		}
	}
	if meta.IsDefined("btc_staking_addr") {
		cfg.BtcStakingAddr = strings.TrimSpace(raw.BtcStakingAddr)
	}
	if meta.IsDefined("notify_cosmos_zone") {
		cfg.NotifyCosmosZone = raw.NotifyCosmosZone
	}
	return cfg, nil
}

// RelayConfig projects the daemon config onto the endpoint configuration.
func (c Config) RelayConfig() relay.Config {
	return relay.Config{
		BtcStakingAddr:   c.BtcStakingAddr,
		NotifyCosmosZone: c.NotifyCosmosZone,
	}
}
