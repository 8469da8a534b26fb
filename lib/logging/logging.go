// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

//
// Pulse's logging requirements are very basic. We roll our own rather than
// bring in a fatter dependency. All we need on top of Go's standard logging
// is a size cap with a single file rotation and a periodic flush.
//
package logging

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"sync"
	"time"
)

const (
	defaultMaxSize = 10 * 1024 * 1024 // 10 MB
	flushInterval  = 5 * time.Second
)

var openWriters = struct {
	sync.Mutex
	m map[string]*rotatingWriter
}{m: make(map[string]*rotatingWriter)}

// rotatingWriter is an os.File wrapper that renames the file to <name>.1
// when it reaches maxSize and starts over. A background goroutine syncs
// pending writes every flushInterval.
type rotatingWriter struct {
	mu       sync.Mutex
	path     string
	maxSize  int64
	file     *os.File
	size     int64
	unsynced int64
	stop     chan struct{}
}

func newRotatingWriter(path string, maxSize int64) (*rotatingWriter, error) {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	w := &rotatingWriter{
		path:    path,
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	go w.flushLoop()

	openWriters.Lock()
	openWriters.m[path] = w
	openWriters.Unlock()
	return w, nil
}

func (w *rotatingWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) >= w.maxSize {
		w.rotate()
	}
	n, err = w.file.Write(p)
	w.size += int64(n)
	w.unsynced += int64(n)
	return
}

func (w *rotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	w.file = f
	w.size = info.Size()
	return nil
}

func (w *rotatingWriter) rotate() {
	// FUTURE: Support more than one archived file.
	w.file.Close()
	archived := w.path + ".1"
	os.Remove(archived)
	os.Rename(w.path, archived)
	w.open()
}

func (w *rotatingWriter) flushLoop() {
	tick := time.NewTicker(flushInterval)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			w.mu.Lock()
			if w.unsynced > 0 {
				w.file.Sync()
				w.unsynced = 0
			}
			w.mu.Unlock()
		case <-w.stop:
			return
		}
	}
}

func (w *rotatingWriter) close() {
	close(w.stop)
	w.mu.Lock()
	w.file.Close()
	w.mu.Unlock()
}

// NewFileLogger returns a logger writing to the named file with the default
// size cap.
func NewFileLogger(file string) *log.Logger {
	return NewFileLoggerWithMaxSize(file, defaultMaxSize)
}

func NewFileLoggerWithMaxSize(file string, maxSize int64) *log.Logger {
	w, err := newRotatingWriter(file, maxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Unable to set up log file: %v\n", err)
		return NewNilLogger()
	}
	return log.New(w, "", log.Ldate|log.Ltime)
}

// CloseAllOpenFileLoggers closes every file-backed logger created so far.
// Really here to help with testing.
func CloseAllOpenFileLoggers() {
	openWriters.Lock()
	defer openWriters.Unlock()
	for path, w := range openWriters.m {
		w.close()
		delete(openWriters.m, path)
	}
}

func NewNilLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func NewConsoleLogger() *log.Logger {
	return log.New(os.Stderr, "", log.Ldate|log.Ltime)
}
