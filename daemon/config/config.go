// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

// The config file is optional. Pulse runs with defaults when no file exists;
// the file only tunes daemon-level concerns (log, pid file, report schedule,
// config signing). The heartbeat message and interval are fixed and have no
// config keys.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/robfig/cron"

	"github.com/papercutsoftware/pulse/lib/confsig"
)

const (
	// ScheduleDisabled turns the uptime report off.
	ScheduleDisabled = "disabled"

	defaultLogFileMaxSizeMb = 50
	defaultReportSchedule   = "@hourly"
)

type Config struct {
	ServiceDescription ServiceDescription
	ServiceConfig      ServiceConfig
	UptimeReport       UptimeReport
}

type ServiceDescription struct {
	Name        string
	DisplayName string
	Description string
}

type ServiceConfig struct {
	LogFile            string
	LogFileMaxSizeMb   int
	PidFile            string
	CrashLogFile       string
	SignaturePublicKey string
}

type UptimeReport struct {
	Schedule string
}

type ReplacementVars struct {
	ServiceName string
	ServiceRoot string
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	conf := &Config{}
	applyDefaults(conf)
	return conf
}

// LoadConfig parses config. When the file pins a signing public key, the
// file must carry a valid signature (see lib/confsig).
func LoadConfig(path string, vars ReplacementVars) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("the conf file does not exist: %s", path)
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	conf := &Config{}
	if err := json.Unmarshal(raw, conf); err != nil {
		return nil, err
	}

	// The signature covers the file as shipped, before any var replacement.
	if key := conf.ServiceConfig.SignaturePublicKey; key != "" {
		if _, err := confsig.Verify(raw, key); err != nil {
			return nil, fmt.Errorf("config signature check failed: %w", err)
		}
	}

	// We've parsed once to find the pinned key. Now replace vars and parse
	// again.
	replacements := map[string]string{
		"${ServiceName}": jsonEscapeString(vars.ServiceName),
		"${ServiceRoot}": jsonEscapeString(vars.ServiceRoot),
	}
	replaced := []byte(replaceVars(string(raw), replacements))
	if err := json.Unmarshal(replaced, conf); err != nil {
		return nil, err
	}

	applyDefaults(conf)
	if err := validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func applyDefaults(conf *Config) {
	if conf.ServiceConfig.LogFileMaxSizeMb == 0 {
		conf.ServiceConfig.LogFileMaxSizeMb = defaultLogFileMaxSizeMb
	}
	if conf.UptimeReport.Schedule == "" {
		conf.UptimeReport.Schedule = defaultReportSchedule
	}
}

func validate(conf *Config) error {
	if s := conf.UptimeReport.Schedule; s != ScheduleDisabled {
		if _, err := cron.Parse(s); err != nil {
			return fmt.Errorf("UptimeReport.Schedule %q is not a valid cron expression: %w", s, err)
		}
	}
	return nil
}

func replaceVars(in string, replacements map[string]string) (out string) {
	out = in
	for key, value := range replacements {
		out = strings.Replace(out, key, value, -1)
	}
	return out
}

func jsonEscapeString(in string) (out string) {
	r := strings.NewReplacer("\\", "\\\\", "\"", "\\\"")
	return r.Replace(in)
}
