// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/papercutsoftware/pulse/daemon/config"
)

// loadConf reads <servicename>.conf beside the executable. The file is
// optional; the daemon runs with defaults when it is absent.
func loadConf() (*config.Config, error) {
	confPath := getConfigFilePath()
	if _, err := os.Stat(confPath); os.IsNotExist(err) {
		return config.Default(), nil
	}
	vars := config.ReplacementVars{
		ServiceName: serviceName(),
		ServiceRoot: exeFolder(),
	}
	return config.LoadConfig(confPath, vars)
}

func getConfigFilePath() string {
	exePath := exePath()
	extension := filepath.Ext(exePath)
	if strings.ToLower(extension) == ".exe" {
		return exePath[0:len(exePath)-4] + ".conf"
	}
	return exePath + ".conf"
}
