// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

// Package beat implements the heartbeat loop: wait a fixed interval, write a
// fixed message, repeat until asked to terminate, then write a farewell line
// and stop. The farewell is always the last line written and is written
// exactly once.
package beat

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/papercutsoftware/pulse/lib/logging"
)

const (
	// DefaultInterval is the wall-clock delay between heartbeats.
	DefaultInterval = 1 * time.Second
	// DefaultMessage is the line emitted on every beat.
	DefaultMessage = "Hello World!"
	// DefaultFarewell is the line emitted once, on termination.
	DefaultFarewell = "Exiting..."
)

type Config struct {
	Interval time.Duration
	Message  string
	Farewell string
	Out      io.Writer
	Logger   *log.Logger
}

type Beater struct {
	conf    Config
	started time.Time
	count   uint64
}

// New returns a Beater with defaults applied for any zero-value fields.
func New(conf Config) *Beater {
	if conf.Interval <= 0 {
		conf.Interval = DefaultInterval
	}
	if conf.Message == "" {
		conf.Message = DefaultMessage
	}
	if conf.Farewell == "" {
		conf.Farewell = DefaultFarewell
	}
	if conf.Out == nil {
		conf.Out = os.Stdout
	}
	if conf.Logger == nil {
		conf.Logger = logging.NewNilLogger()
	}
	return &Beater{conf: conf}
}

// Run blocks, emitting one message line per interval until terminate is
// closed. The sleep is interruptible, so termination latency is at most one
// interval. Writes are strictly sequential; the farewell line is the last
// output before Run returns.
func (b *Beater) Run(terminate chan struct{}) {
	b.started = time.Now()
	b.conf.Logger.Printf("Heartbeat started (interval %v)", b.conf.Interval)

	for {
		select {
		case <-terminate:
			fmt.Fprintln(b.conf.Out, b.conf.Farewell)
			b.conf.Logger.Printf("Heartbeat stopped after %d beats", b.Count())
			return
		case <-time.After(b.conf.Interval):
		}
		fmt.Fprintln(b.conf.Out, b.conf.Message)
		atomic.AddUint64(&b.count, 1)
	}
}

// Count returns the number of heartbeats emitted so far.
func (b *Beater) Count() uint64 {
	return atomic.LoadUint64(&b.count)
}

// Uptime returns the time elapsed since Run started, or zero if the beater
// has not been run.
func (b *Beater) Uptime() time.Duration {
	if b.started.IsZero() {
		return 0
	}
	return time.Since(b.started)
}
