package app

import (
	"fmt"
	"time"

	"github.com/kjeelani/soundseq/pkg/api"
	"github.com/kjeelani/soundseq/pkg/client"
	"github.com/kjeelani/soundseq/pkg/logger"
	"github.com/kjeelani/soundseq/pkg/metadata"
	"github.com/kjeelani/soundseq/pkg/processing"
	"github.com/kjeelani/soundseq/pkg/session"
	"github.com/kjeelani/soundseq/pkg/submission"
)

// Config represents the configuration for app initialization.
type Config struct {
	// ProcessingURL is the base URL of the SFX processing service (defaults to http://localhost:8000).
	ProcessingURL string
	// Port is the web UI port (defaults to 3000).
	Port int
	// Debug enables verbose logging.
	Debug bool
	// JSONLogs switches the log output to JSON.
	JSONLogs bool
	// TimeoutSec bounds each outbound HTTP request (defaults to 60).
	TimeoutSec int
	// InsecureTLS skips certificate verification for outbound requests.
	InsecureTLS bool
	// FetchTitles shows the video title on the confirmation screen.
	FetchTitles bool
	// SessionTTL is how long an idle browser session is kept (defaults to 30m).
	SessionTTL time.Duration
}

// App holds the wired components.
type App struct {
	Config    Config
	Processor *processing.Client
	Sessions  *session.Store
	Server    *api.Server
}

// New creates a ready-to-use App with all necessary dependencies.
func New(cfg Config) (*App, error) {
	logger.SetupGlobal(logger.Options{Debug: cfg.Debug, JSON: cfg.JSONLogs})

	cfg = withDefaults(cfg)

	httpClient, err := client.NewHttpClient(client.Options{
		TimeoutSec:         cfg.TimeoutSec,
		InsecureSkipVerify: cfg.InsecureTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init http client: %w", err)
	}

	proc := processing.New(cfg.ProcessingURL, httpClient)
	store := session.NewStore(func() *submission.Controller {
		return submission.NewController(proc)
	})

	srv := &api.Server{
		Port:     cfg.Port,
		Sessions: store,
	}
	if cfg.FetchTitles {
		pageClient, err := client.NewHttpClient(client.Options{
			TimeoutSec:         cfg.TimeoutSec,
			InsecureSkipVerify: cfg.InsecureTLS,
			FollowRedirects:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init metadata client: %w", err)
		}
		srv.Titles = metadata.NewLookup(pageClient)
	}

	return &App{
		Config:    cfg,
		Processor: proc,
		Sessions:  store,
		Server:    srv,
	}, nil
}

// NewController returns a controller outside any browser session, for CLI use.
func (a *App) NewController() *submission.Controller {
	return submission.NewController(a.Processor)
}

func withDefaults(cfg Config) Config {
	if cfg.ProcessingURL == "" {
		cfg.ProcessingURL = processing.DefaultBaseURL
	}
	if cfg.Port <= 0 {
		cfg.Port = 3000
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 60
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	return cfg
}
