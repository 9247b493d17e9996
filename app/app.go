/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/ortuman/rabber/c2s"
	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/storage"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/ortuman/rabber/version"
	"github.com/pkg/errors"
)

const (
	defaultShutDownWaitTime = time.Duration(5) * time.Second
	defaultConfigFile       = "/etc/rabber/rabber.yml"
)

var logoStr = []string{
	`             _     _               `,
	`   _ __ __ _| |__ | |__   ___ _ __ `,
	`  | '__/ _' | '_ \| '_ \ / _ \ '__|`,
	`  | | | (_| | |_) | |_) |  __/ |   `,
	`  |_|  \__,_|_.__/|_.__/ \___|_|   `,
}

const usageStr = `
Usage: rabber [options]

Server Options:
    -c, --config <file>    Configuration file path
Common Options:
    -h, --help             Show this message
    -v, --version          Show version
`

// Application encapsulates a rabber server application.
type Application struct {
	output           io.Writer
	args             []string
	logger           log.Logger
	rep              repository.Container
	c2s              *c2s.Server
	debugSrv         *debugServer
	waitStopCh       chan os.Signal
	shutDownWaitSecs time.Duration
}

// New returns a runnable application given an output and a command line arguments array.
func New(output io.Writer, args []string) *Application {
	return &Application{
		output:           output,
		args:             args,
		waitStopCh:       make(chan os.Signal, 1),
		shutDownWaitSecs: defaultShutDownWaitTime}
}

// Run runs rabber application until either a stop signal is received or an error occurs.
func (a *Application) Run() error {
	if len(a.args) == 0 {
		return errors.New("empty command-line arguments")
	}
	var configFile string
	var showVersion, showUsage bool

	fs := flag.NewFlagSet("rabber", flag.ContinueOnError)
	fs.SetOutput(a.output)

	fs.BoolVar(&showUsage, "help", false, "Show this message")
	fs.BoolVar(&showUsage, "h", false, "Show this message")
	fs.BoolVar(&showVersion, "version", false, "Print version information.")
	fs.BoolVar(&showVersion, "v", false, "Print version information.")
	fs.StringVar(&configFile, "config", defaultConfigFile, "Configuration file path.")
	fs.StringVar(&configFile, "c", defaultConfigFile, "Configuration file path.")
	fs.Usage = func() {
		for i := range logoStr {
			_, _ = fmt.Fprintf(a.output, "%s\n", logoStr[i])
		}
		_, _ = fmt.Fprintf(a.output, "%s\n", usageStr)
	}
	if err := fs.Parse(a.args[1:]); err != nil {
		return err
	}
	// print usage
	if showUsage {
		fs.Usage()
		return nil
	}
	// print version
	if showVersion {
		_, _ = fmt.Fprintf(a.output, "rabber version: %v\n", version.ApplicationVersion)
		return nil
	}
	// load configuration
	var cfg Config
	if err := cfg.FromFile(configFile); err != nil {
		return errors.Wrap(err, "app: load configuration")
	}
	// create PID file
	if err := a.createPIDFile(cfg.PIDFile); err != nil {
		return err
	}
	// initialize logger
	if err := a.initLogger(&cfg.Logger); err != nil {
		return err
	}
	a.printLogo()

	// initialize storage
	rep, err := storage.New(&cfg.Storage)
	if err != nil {
		return err
	}
	a.rep = rep
	log.Infof("storage initialized [type: %v]", cfg.Storage.Type)

	// start serving c2s...
	a.c2s = c2s.New(&cfg.C2S, rep)
	if err := a.c2s.Start(); err != nil {
		return err
	}
	// initialize debug server...
	if cfg.Debug.Port > 0 {
		a.debugSrv = newDebugServer(cfg.Debug.Port)
		if err := a.debugSrv.start(); err != nil {
			return err
		}
	}
	// ...wait for stop signal to shutdown
	sig := a.waitForStopSignal()
	log.Infof("received %s signal... shutting down...", sig.String())

	return a.gracefullyShutdown()
}

func (a *Application) createPIDFile(pidFile string) error {
	if len(pidFile) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(pidFile), os.ModePerm); err != nil {
		return err
	}
	file, err := os.Create(pidFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	currentPid := os.Getpid()
	if _, err := file.WriteString(strconv.FormatInt(int64(currentPid), 10)); err != nil {
		return err
	}
	return nil
}

func (a *Application) initLogger(cfg *log.Config) error {
	l, err := log.New(cfg, a.output)
	if err != nil {
		return err
	}
	a.logger = l
	log.Set(a.logger)
	return nil
}

func (a *Application) printLogo() {
	for i := range logoStr {
		log.Infof("%s", logoStr[i])
	}
	log.Infof("")
	log.Infof("rabber %v\n", version.ApplicationVersion)
}

func (a *Application) waitForStopSignal() os.Signal {
	signal.Notify(a.waitStopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return <-a.waitStopCh
}

func (a *Application) gracefullyShutdown() error {
	// wait until application has been shut down
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(a.shutDownWaitSecs))
	defer cancel()

	select {
	case err := <-a.shutdown(ctx):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Application) shutdown(ctx context.Context) <-chan error {
	c := make(chan error, 1)
	go func() {
		if a.debugSrv != nil {
			_ = a.debugSrv.stop(ctx)
		}
		if err := a.c2s.Shutdown(ctx); err != nil {
			log.Warnf("c2s shutdown: %v", err)
		}
		err := a.rep.Close(ctx)

		log.Unset()
		_ = a.logger.Close()
		c <- err
	}()
	return c
}
