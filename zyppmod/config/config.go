// Package config loads the optional adapter configuration file.
package config

import (
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Config holds adapter settings. Everything has a working default; the
// file only exists to point at non-standard tool locations or to add
// site-wide zypper arguments.
type Config struct {
	ZypperBin  string
	ZypperArgs []string
	RPMBin     string
	LogLevel   string
	LogFile    string
}

func Default() Config {
	return Config{
		ZypperBin: "zypper",
		RPMBin:    "rpm",
		LogLevel:  "info",
	}
}

// Load reads an ini file at path. An empty path or a missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, err
	}

	zypper := file.Section("zypper")
	if v := zypper.Key("binary").String(); v != "" {
		cfg.ZypperBin = v
	}
	if v := zypper.Key("global_args").String(); v != "" {
		cfg.ZypperArgs = strings.Fields(v)
	}

	rpm := file.Section("rpm")
	if v := rpm.Key("binary").String(); v != "" {
		cfg.RPMBin = v
	}

	log := file.Section("log")
	if v := log.Key("level").String(); v != "" {
		cfg.LogLevel = v
	}
	if v := log.Key("file").String(); v != "" {
		cfg.LogFile = v
	}

	return cfg, nil
}
