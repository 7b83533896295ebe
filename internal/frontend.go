package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/starford/phonebook/internal/client"
	"github.com/starford/phonebook/internal/mcpserver"
	"github.com/starford/phonebook/internal/models"
	"github.com/starford/phonebook/internal/phonebook"
	"github.com/starford/phonebook/internal/tui"
)

// newRemote returns the directory service client for the configuration.
func (a *application) newRemote() (*client.Client, error) {
	c, err := client.New(client.Config{
		BaseURL: a.config.Client.BaseURL,
		Token:   a.config.Client.Token,
		Timeout: a.config.Client.Timeout,
		Logger:  a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init client: %w", err)
	}
	return c, nil
}

func (a *application) phonebookOptions() []phonebook.Option {
	return []phonebook.Option{
		phonebook.WithLogger(a.logger),
		phonebook.WithNoticeTimeout(a.config.Client.NotifyAfter),
	}
}

// startFrontend prepares a quiet application and its directory client.
func startFrontend(opts []Option) (*application, *client.Client, func(), error) {
	app, release, err := newApplication(true, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	remote, err := app.newRemote()
	if err != nil {
		release()
		return nil, nil, nil, err
	}
	app.logger.Info("Using directory service", slog.String("base_url", app.config.Client.BaseURL))
	return app, remote, release, nil
}

// RunTUI shows the interactive terminal phonebook.
func RunTUI(ctx context.Context, opts ...Option) error {
	app, remote, release, err := startFrontend(opts)
	if err != nil {
		return err
	}
	defer release()
	return tui.Run(ctx, remote, app.phonebookOptions()...)
}

// RunMCP serves the phonebook as MCP tools on stdin/stdout.
func RunMCP(_ context.Context, opts ...Option) error {
	app, remote, release, err := startFrontend(opts)
	if err != nil {
		return err
	}
	defer release()
	return mcpserver.New(remote, app.phonebookOptions()...).ServeStdio()
}

// loadPhonebook returns a loaded App for a one-shot command.
func loadPhonebook(ctx context.Context, opts []Option) (*application, *phonebook.App, func(), error) {
	app, remote, release, err := startFrontend(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	pbOpts := append(app.phonebookOptions(),
		phonebook.WithPrompter(app.prompter),
		phonebook.WithScheduler(func(time.Duration, func()) {}))
	pb := phonebook.New(remote, pbOpts...)
	if err := pb.Load(ctx); err != nil {
		release()
		return nil, nil, nil, err
	}
	return app, pb, release, nil
}

// List prints the contacts whose names contain filter.
func List(ctx context.Context, filter string, opts ...Option) error {
	app, pb, release, err := loadPhonebook(ctx, opts)
	if err != nil {
		return err
	}
	defer release()

	pb.SetFilter(filter)
	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	for _, c := range pb.State().Visible() {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Number)
	}
	return tw.Flush()
}

// Add submits a name and number to the phonebook.
func Add(ctx context.Context, name, number string, opts ...Option) error {
	app, pb, release, err := loadPhonebook(ctx, opts)
	if err != nil {
		return err
	}
	defer release()

	before := pb.State().Notice.Generation
	err = pb.Submit(ctx, name, number)
	printNotice(app.out, pb.State(), before)
	return err
}

// Delete removes the contact with exactly the given name.
func Delete(ctx context.Context, name string, opts ...Option) error {
	app, pb, release, err := loadPhonebook(ctx, opts)
	if err != nil {
		return err
	}
	defer release()

	for _, c := range pb.State().Contacts {
		if c.Name != name {
			continue
		}
		before := pb.State().Notice.Generation
		err := pb.Delete(ctx, c)
		s := pb.State()
		printNotice(app.out, s, before)
		if err == nil && s.Notice.Generation == before && models.IndexOf(s.Contacts, c.ID) < 0 {
			fmt.Fprintf(app.out, "Deleted %s\n", c.Name)
		}
		return err
	}
	return fmt.Errorf("no contact named %q", name)
}

// printNotice prints the notification raised since generation before.
func printNotice(w io.Writer, s phonebook.State, before uint64) {
	if n := s.Notice; n.Visible() && n.Generation != before {
		fmt.Fprintln(w, n.Text)
	}
}
