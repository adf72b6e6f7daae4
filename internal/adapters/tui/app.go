// Package tui is the interactive terminal front end.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"gitlabtree/internal/adapters/tui/styles"
	"gitlabtree/internal/adapters/tui/views"
	"gitlabtree/internal/application"
	"gitlabtree/internal/domain"
)

// TickInterval is how often the App polls the loader and ages the toast
const TickInterval = 200 * time.Millisecond

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// ViewState represents the current view
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewBrowser
	ViewHelp
)

type tickMsg time.Time

// Options configure the App
type Options struct {
	Load    application.LoadFunc
	Session application.SessionOptions
	Log     *logrus.Entry
}

// App is the main TUI application model. It owns the loader and, once a
// load finishes, the session built from its result.
type App struct {
	opts    Options
	loader  *application.Loader
	session *application.Session
	spinner spinner.Model
	log     *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	state  ViewState
	width  int
	height int
}

// NewApp creates the application. Loading starts in Init.
func NewApp(opts Options) *App {
	log := opts.Log
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logrus.NewEntry(logger)
	}
	s := spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(styles.Spinner))
	return &App{
		opts:    opts,
		loader:  application.NewLoader(opts.Load, log),
		spinner: s,
		log:     log,
		state:   ViewLoading,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init starts the first load and the UI tick
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.startLoad(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startLoad abandons any run in flight and launches a fresh one
func (a *App) startLoad() tea.Cmd {
	if a.cancel != nil {
		a.cancel()
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.session = nil
	a.state = ViewLoading
	a.loader.Start(a.ctx)
	return a.spinner.Tick
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.poll()
		if a.session != nil {
			a.session.Tick()
		}
		return a, tick()

	case spinner.TickMsg:
		if a.state != ViewLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// poll installs a finished load. A failed load falls back to the sample
// tree so the interface stays usable.
func (a *App) poll() {
	res, ok := a.loader.Poll()
	if !ok {
		return
	}

	var (
		tree   *domain.Tree
		status string
	)
	if res.Err != nil {
		a.log.WithError(res.Err).Error("load failed")
		tree = domain.SampleTree()
		status = views.LoadErrorPrefix + res.Err.Error()
	} else {
		tree = domain.BuildSnapshotTree(res.Acquisition.Snapshot)
		status = res.Acquisition.Status()
	}

	a.session = application.NewSession(tree, status, a.opts.Session)
	a.state = ViewBrowser
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, AppKeys.ForceQuit) {
		return a, a.quit()
	}

	switch a.state {
	case ViewLoading:
		if key.Matches(msg, AppKeys.LoadingQuit) {
			return a, a.quit()
		}
		return a, nil

	case ViewHelp:
		if key.Matches(msg, views.HelpKeys.Close) {
			a.state = ViewBrowser
		}
		return a, nil
	}

	if key.Matches(msg, AppKeys.Help) && !a.session.Navigator().Searching() {
		a.state = ViewHelp
		return a, nil
	}

	for _, k := range translateKey(msg) {
		switch a.session.HandleKey(k) {
		case application.ActionQuit:
			return a, a.quit()
		case application.ActionReload:
			a.log.Info("reload requested")
			return a, a.startLoad()
		}
	}
	return a, nil
}

func (a *App) quit() tea.Cmd {
	if a.cancel != nil {
		a.cancel()
	}
	return tea.Quit
}

// Session returns the active session, nil while loading
func (a *App) Session() *application.Session {
	return a.session
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewLoading:
		return views.RenderLoading(a.spinner.View(), a.width, a.height)
	case ViewHelp:
		return views.RenderHelp(a.width, a.height)
	default:
		return views.RenderFrame(a.session.Frame(), a.width, a.height)
	}
}
