package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/myuser/simpledb/internal/metrics"
	"github.com/myuser/simpledb/internal/storage"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (empty disables)")
	history := flag.String("history", "", "Readline history file")
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reg := metrics.NewRegistry(prometheus.NewRegistry())
	db := storage.NewMemoryDB(
		storage.WithLogger(logger.Named("storage")),
		storage.WithMetrics(reg),
	)

	var srv *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		srv = &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		logger.Info("serving metrics", zap.String("addr", *metricsAddr))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "simpledb> ",
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logger.Fatal("readline init failed", zap.Error(err))
	}
	defer rl.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, shutdownSignals...)
	go func() {
		<-stop
		rl.Close()
	}()

	sh := &shell{db: db, logger: logger, out: rl.Stdout()}
	for {
		rl.SetPrompt(sh.prompt())
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if err != io.EOF {
				logger.Debug("readline stopped", zap.Error(err))
			}
			break
		}
		sh.exec(line)
	}

	if d := db.Depth(); d > 0 {
		fmt.Fprintf(os.Stderr, "discarding %d open transaction(s)\n", d)
	}
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("metrics server shutdown failed", zap.Error(err))
		}
	}
}

// shutdownSignals close the shell. On a terminal readline reads ^C as a key
// and only clears the line; SIGINT arrives when input is piped.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
