package application

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"gitlabtree/internal/domain"
	"gitlabtree/internal/ports"
)

// ToastTicks is how many UI ticks a toast stays on screen
const ToastTicks = 10

// SessionOptions wires a Session to its surroundings
type SessionOptions struct {
	Clipboard ports.ClipboardSink // nil when no backend is available
	Browser   ports.BrowserOpener
	BaseURL   string
	TokenSet  bool
	Log       *logrus.Entry
}

// Session is the interactive state for one loaded catalog: navigation,
// status line, toast, and the side-effect sinks
type Session struct {
	nav    *Navigator
	status string
	toast  *ToastView
	opts   SessionOptions
	log    *logrus.Entry
}

// NewSession wraps a freshly built tree
func NewSession(tree *domain.Tree, status string, opts SessionOptions) *Session {
	return &Session{
		nav:    NewNavigator(tree),
		status: status,
		opts:   opts,
		log:    orDiscard(opts.Log),
	}
}

// Navigator exposes the cursor state
func (s *Session) Navigator() *Navigator {
	return s.nav
}

// Status returns the current status message
func (s *Session) Status() string {
	return s.status
}

// SetStatus replaces the status message
func (s *Session) SetStatus(msg string) {
	s.status = msg
}

// Toast returns the active toast, if any
func (s *Session) Toast() *ToastView {
	if s.toast == nil {
		return nil
	}
	t := *s.toast
	return &t
}

// ShowToast displays a message for ToastTicks ticks
func (s *Session) ShowToast(msg string) {
	s.toast = &ToastView{Message: msg, Remaining: ToastTicks}
}

// Tick ages the toast by one UI tick
func (s *Session) Tick() {
	if s.toast == nil {
		return
	}
	if s.toast.Remaining > 0 {
		s.toast.Remaining--
	}
	if s.toast.Remaining == 0 {
		s.toast = nil
	}
}

// HandleKey routes a key through the navigator and runs yank and open
// itself. Only quit and reload are returned to the caller.
func (s *Session) HandleKey(k Key) Action {
	switch action := s.nav.HandleKey(k); action {
	case ActionYank:
		s.Yank()
		return ActionNone
	case ActionOpen:
		s.Open()
		return ActionNone
	default:
		return action
	}
}

// Yank copies the selected URL to the clipboard
func (s *Session) Yank() {
	if s.opts.Clipboard == nil {
		s.status = ErrClipboardUnavailable.Error()
		return
	}
	url, err := s.nav.SelectedURL()
	if err == nil {
		err = s.opts.Clipboard.SetText(url)
	}
	if err != nil {
		s.log.WithError(err).Warn("copy failed")
		s.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	s.status = "copied " + url
	s.ShowToast("Copied URL")
}

// Open launches the selected URL in the browser
func (s *Session) Open() {
	url, err := s.nav.SelectedURL()
	if err == nil {
		if s.opts.Browser == nil {
			err = fmt.Errorf("no browser opener configured")
		} else {
			err = s.opts.Browser.Open(url)
		}
	}
	if err != nil {
		s.log.WithError(err).Warn("open failed")
		s.status = fmt.Sprintf("open failed: %v", err)
		return
	}
	s.status = "opened " + url
}

// RowView is one rendered tree line
type RowView struct {
	Depth    int
	Marker   string
	Kind     string
	Name     string
	Selected bool
}

// Line formats the row the way the tree pane shows it
func (r RowView) Line() string {
	return fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", r.Depth), r.Marker, r.Kind, r.Name)
}

// ToastView is a transient notice with its remaining lifetime in ticks
type ToastView struct {
	Message   string
	Remaining int
}

// Frame is an immutable snapshot of everything the renderer shows
type Frame struct {
	Rows      []RowView
	Details   []string
	Status    string
	Toast     *ToastView
	Searching bool
	Query     string
	HasQuery  bool
	Footer    string
}

// Frame captures the current session state for rendering
func (s *Session) Frame() Frame {
	tree := s.nav.Tree()
	rows := s.nav.Rows()
	views := make([]RowView, 0, len(rows))
	for i, r := range rows {
		node := tree.Node(r.Node)
		views = append(views, RowView{
			Depth:    r.Depth,
			Marker:   marker(node),
			Kind:     node.Kind.String(),
			Name:     node.Name,
			Selected: i == s.nav.Selected(),
		})
	}

	query, hasQuery := s.nav.Query()
	f := Frame{
		Rows:      views,
		Details:   s.nav.Details(),
		Status:    s.status,
		Toast:     s.Toast(),
		Searching: s.nav.Searching(),
		Query:     query,
		HasQuery:  hasQuery,
	}
	f.Footer = s.footer(f)
	return f
}

func (s *Session) footer(f Frame) string {
	token := "token: unset"
	if s.opts.TokenSet {
		token = "token: set"
	}
	parts := []string{
		"q quit", "r refresh", "up/down move", "right expand", "left collapse",
		"y yank", "o open", "/ search", s.opts.BaseURL, token,
	}
	if f.Status != "" {
		parts = append(parts, f.Status)
	}
	if f.HasQuery {
		label := "search"
		if f.Searching {
			label = "search*"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", label, f.Query))
	}
	return strings.Join(parts, " | ")
}

func marker(n domain.Node) string {
	switch {
	case len(n.Children) == 0:
		return " * "
	case n.Expanded:
		return "[-]"
	default:
		return "[+]"
	}
}
