// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/exec"
	"time"
)

const (
	lastCrashFile  = "pulse.lastcrash"
	maxCrashCount  = 5
	debounceFactor = 1 * time.Second
)

func handlePanic(ctx *context) {
	err := recover()
	if err == nil {
		// did not crash. return without doing anything
		return
	}

	logger := crashLogger(ctx)

	abort := debounce()
	if abort {
		logger.Printf("daemon crashed too many times. bailing...")
		os.Exit(2)
	}

	logger.Println("daemon is crashing; stopping the heartbeat")
	logger.Printf("stack: %v", err)
	doStop(ctx)
	removePidFile(ctx)

	// relaunch ourselves in the same mode (run, install, ...)
	cmd := exec.Command(exePath(), os.Args[1:]...)
	log.Printf("starting new instance of %s; got err %v", exeName(), cmd.Start())
}

func crashLogger(ctx *context) *log.Logger {
	crashlog := ctx.conf.ServiceConfig.CrashLogFile
	if crashlog == "" {
		crashlog = "crashlog.log"
	}

	f, err := os.OpenFile(crashlog, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		f = os.Stderr
	}

	return log.New(f, "", log.Ldate|log.Ltime)
}

type lastCrash struct {
	Timestamp  time.Time
	CrashCount int
}

func debounce() bool {
	now := time.Now()

	lc := readLastCrash()
	if lc == nil {
		lc = &lastCrash{
			Timestamp:  now,
			CrashCount: 1,
		}

		_ = writeLastCrash(lc)
		return false
	}

	if time.Since(lc.Timestamp) > time.Hour {
		lc.Timestamp = now
		lc.CrashCount = 1
		_ = writeLastCrash(lc)
		return false
	}

	if lc.CrashCount < maxCrashCount {
		lc.Timestamp = now
		lc.CrashCount = lc.CrashCount + 1

		time.Sleep(debounceFactor * time.Duration(lc.CrashCount))
		_ = writeLastCrash(lc)
		return false
	}

	return true
}

func readLastCrash() *lastCrash {
	f, err := os.Open(lastCrashFile)
	if err != nil {
		return nil
	}
	defer f.Close()

	lc := &lastCrash{}
	if err := json.NewDecoder(f).Decode(lc); err != nil {
		log.Printf("failed to read lastcrash: %v", err)
		return nil
	}
	return lc
}

func writeLastCrash(lc *lastCrash) error {
	f, err := os.Create(lastCrashFile)
	if err != nil {
		return errors.New("failed to write lastcrash file")
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(lc)
}
