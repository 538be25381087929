package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/oukeidos/qrscan/internal/cleanup"
	"github.com/oukeidos/qrscan/internal/files"
	"github.com/oukeidos/qrscan/internal/logger"
	"github.com/oukeidos/qrscan/internal/prompt"
)

var newConfirmer = prompt.DefaultConfirmer

// openLogFile opens path for JSONL appends and registers its Close.
// An empty path disables the file sink.
func openLogFile(path string) (io.Writer, error) {
	if path == "" {
		return nil, nil
	}
	if err := files.RejectSymlinkPath(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	cleanup.Register(f.Close)
	return f, nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
