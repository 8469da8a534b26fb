// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/papercutsoftware/pulse/lib/osutils"
)

const pidFileDisabled = "disabled"

func pidFilePath(ctx *context) string {
	pidFile := ctx.conf.ServiceConfig.PidFile
	if pidFile == "" {
		return serviceName() + ".pid"
	}
	return pidFile
}

// checkAlreadyRunning refuses to start a second instance. A pid file whose
// pid is no longer alive is treated as stale and removed.
func checkAlreadyRunning(ctx *context) error {
	pidFile := pidFilePath(ctx)
	if pidFile == pidFileDisabled {
		return nil
	}

	data, err := ioutil.ReadFile(pidFile)
	if err != nil {
		// No pid file, nothing running.
		return nil
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		os.Remove(pidFile)
		return nil
	}

	if running, _ := osutils.ProcessIsRunning(pid); running && pid != os.Getpid() {
		return fmt.Errorf("%s is already running (pid %d)", serviceName(), pid)
	}
	os.Remove(pidFile)
	return nil
}

func writePidFile(ctx *context) error {
	pidFile := pidFilePath(ctx)
	if pidFile == pidFileDisabled {
		return nil
	}
	return ioutil.WriteFile(pidFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}

func removePidFile(ctx *context) {
	pidFile := pidFilePath(ctx)
	if pidFile == pidFileDisabled {
		return
	}
	os.Remove(pidFile)
}
