package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/myrtille/remotesession-bridge/internal/codec"
	"github.com/myrtille/remotesession-bridge/internal/diagnostics"
	"github.com/myrtille/remotesession-bridge/internal/metrics"
	"github.com/myrtille/remotesession-bridge/internal/printer"
	"github.com/myrtille/remotesession-bridge/internal/rdpfacade"
	"github.com/myrtille/remotesession-bridge/internal/screencap"
	"github.com/myrtille/remotesession-bridge/internal/settings"
	"github.com/myrtille/remotesession-bridge/internal/spoolerfacade"
	"github.com/myrtille/remotesession-bridge/internal/version"
)

func main() {
	cfg, err := settings.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logFile, err := redirectDebugLog(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log := newLogger(cfg)
	defer log.Sync()

	if !cfg.Enabled() {
		log.Fatal("no session id configured; pass -session-id or set MyrtilleSessionId")
	}

	var diag *diagnostics.Store
	if cfg.SaveFrames {
		diag, err = diagnostics.Open(diagnosticsPath(cfg))
		if err != nil {
			log.Fatal("open diagnostics store", zap.Error(err))
		}
	}

	mtr := metrics.New(prometheus.DefaultRegisterer)

	rdp := rdpfacade.NewNull()
	screen := screencap.NewTestPatternSource(1024, 768)
	c := codec.New(&codec.FallbackWebPEncoder{Logger: log})
	prints := printer.New(&spoolerfacade.Null{}, nil)

	sess := NewSession(cfg.SessionID, log, rdp, screen, c, prints, mtr, diag)

	if err := sess.Connect(); err != nil {
		log.Fatal("connect session channels", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("session bridge started",
		zap.Int("session_id", cfg.SessionID),
		zap.Stringer("state", sess.State()),
		zap.String("version", version.Version),
		zap.String("build_time", version.BuildTime))
	sess.Run(ctx)
	log.Info("session bridge stopped")
}

func newLogger(cfg settings.Settings) *zap.Logger {
	var encoder zapcore.Encoder
	level := zap.InfoLevel
	if cfg.DebugLog != "" {
		level = zap.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if isatty.IsTerminal(os.Stderr.Fd()) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)
	return zap.New(core)
}

func diagnosticsPath(cfg settings.Settings) string {
	dir := cfg.LogDir
	if dir == "" {
		dir = os.TempDir()
	}
	return fmt.Sprintf("%s/remotesession-bridge-%d.sqlite", dir, cfg.SessionID)
}
