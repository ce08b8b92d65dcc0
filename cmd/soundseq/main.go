package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kjeelani/soundseq/pkg/app"
	"github.com/kjeelani/soundseq/pkg/submission"
)

func main() {
	cfg := app.ConfigFromEnv()

	flag.StringVar(&cfg.ProcessingURL, "processing-url", cfg.ProcessingURL, "Base URL of the SFX processing service")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "Port for the web UI")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	flag.BoolVar(&cfg.JSONLogs, "json-logs", cfg.JSONLogs, "Write logs as JSON")
	flag.IntVar(&cfg.TimeoutSec, "timeout", cfg.TimeoutSec, "Max seconds per outbound request")
	flag.BoolVar(&cfg.InsecureTLS, "insecure", cfg.InsecureTLS, "Skip TLS verification for outbound requests")
	flag.BoolVar(&cfg.FetchTitles, "titles", cfg.FetchTitles, "Show the video title after submission")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle time before a browser session is dropped")
	linkFlag := flag.String("link", "", "Submit a single YouTube link and exit")

	flag.Parse()

	a, err := app.New(cfg)
	if err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	// CLI
	if *linkFlag != "" {
		slog.Info("Submitting video via CLI", "link", *linkFlag, "processing_url", a.Config.ProcessingURL)
		os.Exit(submitOnce(a.NewController(), *linkFlag))
	}

	// Web UI
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.Sessions.RunCleaner(ctx, time.Minute, a.Config.SessionTTL)

	errCh := make(chan error, 1)
	go func() { errCh <- a.Server.Start() }()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case serr := <-errCh:
		slog.Error("Server crashed", "err", serr)
		os.Exit(1)
	}
}

// submitOnce drives one InputChanged + Submit and returns the process exit code.
func submitOnce(ctrl *submission.Controller, link string) int {
	if err := ctrl.InputChanged(link); err != nil {
		slog.Error("Failed to set link", "err", err)
		return 1
	}

	err := ctrl.Submit(context.Background())
	var (
		verr *submission.ValidationError
		serr *submission.SubmissionError
	)
	switch {
	case err == nil:
		slog.Info("Your video has been sent to process!")
		return 0
	case errors.As(err, &verr), errors.As(err, &serr):
		slog.Error(ctrl.Snapshot().ErrorMessage, "err", err)
		return 1
	default:
		slog.Error("Submission failed", "err", err)
		return 1
	}
}
