// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/papercutsoftware/pulse/daemon/config"
	"github.com/papercutsoftware/pulse/lib/beat"
	"github.com/papercutsoftware/pulse/lib/logging"
)

func TestHeartbeat_StartStop(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	ctx := &context{
		conf:     config.Default(),
		logger:   logging.NewNilLogger(),
		out:      &buf,
		interval: 10 * time.Millisecond,
	}

	// Act
	doStart(ctx)
	time.Sleep(100 * time.Millisecond)
	doStop(ctx)

	// Assert - doStop waits for the loop, so the farewell is in the buffer.
	out := buf.String()
	if !strings.Contains(out, beat.DefaultMessage) {
		t.Errorf("Expected heartbeat output, got %q", out)
	}
	if !strings.HasSuffix(out, beat.DefaultFarewell+"\n") {
		t.Errorf("Expected farewell as final line, got %q", out)
	}
	if n := strings.Count(out, beat.DefaultFarewell); n != 1 {
		t.Errorf("Expected exactly one farewell line, got %d", n)
	}
}

func TestHeartbeat_StopIsPrompt(t *testing.T) {
	var buf bytes.Buffer
	ctx := &context{
		conf:     config.Default(),
		logger:   logging.NewNilLogger(),
		out:      &buf,
		interval: time.Second,
	}

	doStart(ctx)
	start := time.Now()
	doStop(ctx)

	// Termination latency is at most one interval; an immediate stop should
	// come back well inside it.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("doStop took %v, expected under one interval", elapsed)
	}
	if got := buf.String(); got != beat.DefaultFarewell+"\n" {
		t.Errorf("Expected farewell only, got %q", got)
	}
}

func TestCheckAlreadyRunning_LivePid(t *testing.T) {
	ctx := testContext(t)
	// The parent process (the test runner) is alive for the duration.
	writeTestPidFile(t, ctx, os.Getppid())

	if err := checkAlreadyRunning(ctx); err == nil {
		t.Error("Expected error for a live pid")
	}
}

func TestCheckAlreadyRunning_StalePidFileIsRemoved(t *testing.T) {
	ctx := testContext(t)
	writeTestPidFile(t, ctx, 99999999)

	if err := checkAlreadyRunning(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := os.Stat(ctx.conf.ServiceConfig.PidFile); !os.IsNotExist(err) {
		t.Error("Expected stale pid file to be removed")
	}
}

func TestCheckAlreadyRunning_NoPidFile(t *testing.T) {
	ctx := testContext(t)

	if err := checkAlreadyRunning(ctx); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestWriteAndRemovePidFile(t *testing.T) {
	ctx := testContext(t)

	if err := writePidFile(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data, err := ioutil.ReadFile(ctx.conf.ServiceConfig.PidFile)
	if err != nil {
		t.Fatalf("Unable to read pid file: %v", err)
	}
	if want := fmt.Sprintf("%d\n", os.Getpid()); string(data) != want {
		t.Errorf("Expected pid file content %q, got %q", want, data)
	}

	removePidFile(ctx)
	if _, err := os.Stat(ctx.conf.ServiceConfig.PidFile); !os.IsNotExist(err) {
		t.Error("Expected pid file to be removed")
	}
}

func testContext(t *testing.T) *context {
	t.Helper()
	conf := config.Default()
	conf.ServiceConfig.PidFile = filepath.Join(t.TempDir(), "pulse.pid")
	return &context{conf: conf, logger: logging.NewNilLogger()}
}

func writeTestPidFile(t *testing.T, ctx *context, pid int) {
	t.Helper()
	err := ioutil.WriteFile(ctx.conf.ServiceConfig.PidFile, []byte(fmt.Sprintf("%d\n", pid)), 0644)
	if err != nil {
		t.Fatalf("Unable to write pid file: %v", err)
	}
}
