// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/kardianos/service"

	"github.com/robfig/cron"

	"github.com/papercutsoftware/pulse/daemon/config"
	"github.com/papercutsoftware/pulse/lib/beat"
	"github.com/papercutsoftware/pulse/lib/logging"
)

type context struct {
	conf        *config.Config
	logger      *log.Logger
	beater      *beat.Beater
	terminate   chan struct{}
	done        sync.WaitGroup
	cronManager *cron.Cron

	// Overridable for testing; zero values mean the fixed defaults.
	out      io.Writer
	interval time.Duration
}

func main() {
	conf, err := loadConf()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Invalid config - %v\n", err)
		os.Exit(1)
	}

	action, err := parse(os.Args)
	if err != nil {
		printUsage(conf.ServiceDescription.DisplayName, conf.ServiceDescription.Description)
		os.Exit(1)
	}

	if err := os.Chdir(exeFolder()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to set working directory - %v\n", err)
		os.Exit(1)
	}

	ctx := &context{conf: conf}

	switch action {
	case "validate":
		fmt.Println("Config is valid")
		os.Exit(0)
	case "help":
		printUsage(conf.ServiceDescription.DisplayName, conf.ServiceDescription.Description)
		os.Exit(0)
	default:
		serviceControl(ctx, action)
	}
}

func serviceControl(ctx *context, action string) {
	// Setup log file out
	logFile := ctx.conf.ServiceConfig.LogFile
	if logFile == "" {
		logFile = serviceName() + ".log"
	}
	maxSize := int64(ctx.conf.ServiceConfig.LogFileMaxSizeMb) * 1024 * 1024
	ctx.logger = logging.NewFileLoggerWithMaxSize(logFile, maxSize)

	// Setup service
	svcConfig := &service.Config{
		Name:        serviceName(),
		DisplayName: displayName(ctx.conf),
		Description: ctx.conf.ServiceDescription.Description,
	}

	prog := &program{ctx: ctx}
	svc, err := service.New(prog, svcConfig)
	if err != nil {
		fmt.Printf("ERROR: Invalid service config: %v\n", err)
		os.Exit(1)
	}

	if action != "" && action != "run" {
		if err := service.Control(svc, action); err != nil {
			fmt.Printf("ERROR: Invalid service command: %v\n", err)
			os.Exit(1)
		}
		if action == "install" {
			if err := setServiceRecovery(serviceName()); err != nil {
				fmt.Printf("WARNING: Unable to set service recovery: %v\n", err)
			}
		}
		os.Exit(0)
	}

	if err := checkAlreadyRunning(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	defer handlePanic(ctx)

	if err := svc.Run(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func displayName(conf *config.Config) string {
	if conf.ServiceDescription.DisplayName != "" {
		return conf.ServiceDescription.DisplayName
	}
	return serviceName()
}

func printUsage(svcDisplayName, svcDesc string) {
	fmt.Printf("%s (%s)\n", svcDisplayName, serviceName())
	if svcDesc != "" {
		fmt.Printf("%s\n", svcDesc)
	}
	fmt.Printf("\nUsage:\n")
	fmt.Printf("%s [install|uninstall|start|stop|validate|run|help]\n", exeName())
	fmt.Printf("  install   - Install the service.\n")
	fmt.Printf("  uninstall - Remove/uninstall the service.\n")
	fmt.Printf("  start     - Start an installed service.\n")
	fmt.Printf("  stop      - Stop an installed service.\n")
	fmt.Printf("  validate  - Test the configuration file.\n")
	fmt.Printf("  run       - Run the heartbeat in command-line mode (default).\n")
	fmt.Printf("  help      - This usage message.\n")
}

type program struct {
	ctx *context
}

func (p *program) Start(s service.Service) error {
	msg := fmt.Sprintf("Service '%s' started.", serviceName())
	p.ctx.logger.Printf(msg)
	if sysLogger, err := s.Logger(nil); err == nil {
		sysLogger.Info(msg)
	}

	if err := writePidFile(p.ctx); err != nil {
		p.ctx.logger.Printf("WARNING: Unable to write pid file: %v", err)
	}

	doStart(p.ctx)
	return nil
}

func (p *program) Stop(s service.Service) error {
	p.ctx.logger.Printf("Stopping '%s' service...", serviceName())

	doStop(p.ctx)
	removePidFile(p.ctx)

	msg := fmt.Sprintf("Stopped '%s' service.", serviceName())
	p.ctx.logger.Printf(msg)
	if sysLogger, err := s.Logger(nil); err == nil {
		sysLogger.Info(msg)
	}
	return nil
}

func doStart(ctx *context) {
	ctx.terminate = make(chan struct{})
	ctx.beater = beat.New(beat.Config{
		Interval: ctx.interval,
		Out:      ctx.out,
		Logger:   ctx.logger,
	})
	startHeartbeat(ctx)
	setupUptimeReport(ctx)
}

func doStop(ctx *context) {
	if ctx.cronManager != nil {
		ctx.cronManager.Stop()
		ctx.cronManager = nil
	}
	if ctx.terminate != nil {
		close(ctx.terminate)
		ctx.terminate = nil
	}
	// The farewell line is written before the heartbeat goroutine finishes,
	// so waiting here guarantees it is flushed before we report stopped.
	ctx.done.Wait()
}

func startHeartbeat(ctx *context) {
	ctx.done.Add(1)
	terminate := ctx.terminate
	go func() {
		defer ctx.done.Done()
		ctx.beater.Run(terminate)
	}()
}

func setupUptimeReport(ctx *context) {
	schedule := ctx.conf.UptimeReport.Schedule
	if schedule == config.ScheduleDisabled {
		return
	}
	ctx.cronManager = cron.New()
	err := ctx.cronManager.AddFunc(schedule, func() {
		ctx.logger.Printf("Heartbeat up %v (%d beats)",
			ctx.beater.Uptime().Round(time.Second), ctx.beater.Count())
	})
	if err != nil {
		ctx.logger.Printf("Unable to schedule uptime report: %v", err)
		return
	}
	ctx.cronManager.Start()
}
