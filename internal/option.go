package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/phonebook/internal/logging"
	"github.com/starford/phonebook/internal/phonebook"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	logger   *slog.Logger
	prompter phonebook.Prompter
	out      io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger overrides the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithPrompter sets how command line operations ask for confirmation.
func WithPrompter(p phonebook.Prompter) Option {
	return func(a *application) {
		a.prompter = p
	}
}

// WithOutput sets where command line operations print results.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// newApplication applies opts. When no logger is given, one is built from
// the configuration; quiet front ends that own stdout log to the
// configured file or nowhere.
func newApplication(quiet bool, opts ...Option) (*application, func(), error) {
	app := &application{out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	if app.prompter == nil {
		app.prompter = phonebook.StaticPrompter{}
	}

	release := func() {}
	if app.logger == nil {
		logOpts := app.config.App.LogOptions()
		if quiet && logOpts.File == "" {
			logOpts.File = os.DevNull
		}
		app.logger, release = logging.New(logOpts)
	}
	return app, release, nil
}
