package phonebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultNoticeTimeout is how long a notification stays visible.
const DefaultNoticeTimeout = 2 * time.Second

// Scheduler runs fn once after d. It must not block.
type Scheduler func(d time.Duration, fn func())

// Option configures an App.
type Option func(*App)

// WithPrompter sets the prompter used for confirmations and alerts.
func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompter = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithNoticeTimeout sets how long notifications stay visible.
func WithNoticeTimeout(d time.Duration) Option {
	return func(a *App) { a.noticeTimeout = d }
}

// WithScheduler replaces time.AfterFunc for notification expiry.
func WithScheduler(s Scheduler) Option {
	return func(a *App) { a.schedule = s }
}

// App owns the client State and runs every user operation against the
// Remote. It is safe for concurrent use: remote calls run without the
// state lock and their results are applied when they resolve, so of two
// racing operations the one resolving last wins.
type App struct {
	remote        Remote
	prompter      Prompter
	logger        *slog.Logger
	noticeTimeout time.Duration
	schedule      Scheduler

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// New creates an App backed by remote. Without WithPrompter every
// confirmation is declined.
func New(remote Remote, opts ...Option) *App {
	a := &App{
		remote:        remote,
		prompter:      StaticPrompter{},
		logger:        slog.Default(),
		noticeTimeout: DefaultNoticeTimeout,
		schedule:      func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OnChange registers fn to receive a snapshot after every state
// transition. fn runs outside the state lock and may be called from any
// goroutine.
func (a *App) OnChange(fn func(State)) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// State returns a snapshot of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// commit applies a transition and publishes the result.
func (a *App) commit(transition func(State) State) State {
	a.mu.Lock()
	a.state = transition(a.state)
	s, fn := a.state, a.onChange
	a.mu.Unlock()

	if fn != nil {
		fn(s)
	}
	return s
}

// announce applies a transition together with a new notification and
// schedules the notification's expiry. The expiry only clears the message
// it was scheduled for.
func (a *App) announce(transition func(State) State, text string, isError bool) {
	s := a.commit(func(s State) State {
		return transition(s).WithNotice(text, isError)
	})
	gen := s.Notice.Generation
	a.schedule(a.noticeTimeout, func() {
		a.commit(func(s State) State { return s.WithoutNotice(gen) })
	})
}

func unchanged(s State) State { return s }

// Load fetches the whole directory from the remote and makes it the
// session's directory.
func (a *App) Load(ctx context.Context) error {
	contacts, err := a.remote.List(ctx)
	if err != nil {
		a.logger.Error("load directory failed", slog.String("error", err.Error()))
		a.announce(unchanged, "Could not load phonebook", true)
		return fmt.Errorf("load directory: %w", err)
	}
	a.commit(func(s State) State { return s.WithContacts(contacts) })
	a.logger.Debug("directory loaded", slog.Int("contacts", len(contacts)))
	return nil
}

// SetFilter sets the filter fragment; the visible list follows from it.
func (a *App) SetFilter(fragment string) {
	a.commit(func(s State) State { return s.WithFilter(fragment) })
}

// SetInputs records the current form fields.
func (a *App) SetInputs(name, number string) {
	a.commit(func(s State) State { return s.WithInputs(name, number) })
}

// Submit reconciles (name, number) with the directory as it is when
// Submit is called: a new name is created, a known name with another
// number is replaced after confirmation, and a known name with the same
// number is reported through an alert. Surrounding whitespace is not part
// of a name or number. The form fields are cleared before anything else
// happens.
func (a *App) Submit(ctx context.Context, name, number string) error {
	snapshot := a.commit(func(s State) State { return s.WithInputs("", "") })

	name, number = strings.TrimSpace(name), strings.TrimSpace(number)
	if name == "" || number == "" {
		a.announce(unchanged, "Name and number are required", true)
		return ErrMissingField
	}

	var errs []error
	for _, d := range Plan(name, number, snapshot.Contacts) {
		a.logger.Debug("reconcile",
			slog.String("name", name),
			slog.String("decision", d.Kind.String()),
			slog.String("id", d.Contact.ID))

		switch d.Kind {
		case DecisionCreate:
			errs = append(errs, a.create(ctx, d.Contact))
		case DecisionReplace:
			errs = append(errs, a.replace(ctx, d.Contact, number))
		case DecisionDuplicate:
			a.prompter.Alert(ctx, fmt.Sprintf("%s already added to phonebook", name))
		}
	}
	return errors.Join(errs...)
}

func (a *App) create(ctx context.Context, c Contact) error {
	created, err := a.remote.Create(ctx, c)
	if err != nil {
		a.logger.Error("create contact failed", slog.String("name", c.Name), slog.String("error", err.Error()))
		a.announce(unchanged, fmt.Sprintf("Could not add '%s'", c.Name), true)
		return fmt.Errorf("create %s: %w", c.Name, err)
	}
	a.announce(func(s State) State { return s.WithAdded(created) },
		fmt.Sprintf("Added '%s'", created.Name), false)
	return nil
}

func (a *App) replace(ctx context.Context, old Contact, number string) error {
	question := fmt.Sprintf("%s is already added to phonebook, replace the old number with a new one?", old.Name)
	if !a.prompter.Confirm(ctx, question) {
		return nil
	}

	updated, err := a.remote.Update(ctx, old.ID, Contact{ID: old.ID, Name: old.Name, Number: number})
	switch {
	case err == nil:
		if updated.ID == "" {
			updated.ID = old.ID
		}
		a.announce(func(s State) State { return s.WithReplaced(updated) },
			fmt.Sprintf("Updated number for %s", updated.Name), false)
		return nil

	case errors.Is(err, ErrStaleRecord):
		a.logger.Info("stale contact removed", slog.String("id", old.ID), slog.String("name", old.Name))
		a.announce(func(s State) State { return s.WithRemoved(old.ID) },
			fmt.Sprintf("Information of %s has already been removed from server", old.Name), true)
		return nil

	default:
		a.logger.Error("update contact failed", slog.String("id", old.ID), slog.String("error", err.Error()))
		a.announce(unchanged, fmt.Sprintf("Could not update %s", old.Name), true)
		return fmt.Errorf("update %s: %w", old.Name, err)
	}
}

// Delete removes c from the directory after confirmation.
func (a *App) Delete(ctx context.Context, c Contact) error {
	if !a.prompter.Confirm(ctx, fmt.Sprintf("Delete %s?", c.Name)) {
		return nil
	}

	err := a.remote.Delete(ctx, c.ID)
	switch {
	case err == nil:
		a.commit(func(s State) State { return s.WithRemoved(c.ID) })
		return nil

	case errors.Is(err, ErrStaleRecord):
		a.announce(func(s State) State { return s.WithRemoved(c.ID) },
			fmt.Sprintf("Information of %s has already been removed from server", c.Name), true)
		return nil

	default:
		a.logger.Error("delete contact failed", slog.String("id", c.ID), slog.String("error", err.Error()))
		a.announce(unchanged, fmt.Sprintf("Could not delete %s", c.Name), true)
		return fmt.Errorf("delete %s: %w", c.Name, err)
	}
}

// StaticPrompter answers every confirmation with Answer and ignores
// alerts.
type StaticPrompter struct {
	Answer bool
}

// Confirm returns p.Answer.
func (p StaticPrompter) Confirm(context.Context, string) bool { return p.Answer }

// Alert does nothing.
func (StaticPrompter) Alert(context.Context, string) {}
