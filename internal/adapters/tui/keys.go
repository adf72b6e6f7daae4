package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlabtree/internal/application"
)

// AppKeyMap holds the bindings the App handles before the navigator
type AppKeyMap struct {
	ForceQuit   key.Binding
	LoadingQuit key.Binding
	Help        key.Binding
}

var AppKeys = AppKeyMap{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	LoadingQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// translateKey maps a terminal key event onto navigator keys. A paste
// arrives as several runes and yields one key per rune.
func translateKey(msg tea.KeyMsg) []application.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]application.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, application.RuneKey(r))
		}
		return keys
	case tea.KeySpace:
		return []application.Key{application.RuneKey(' ')}
	case tea.KeyUp:
		return []application.Key{{Code: application.KeyUp}}
	case tea.KeyDown:
		return []application.Key{{Code: application.KeyDown}}
	case tea.KeyLeft:
		return []application.Key{{Code: application.KeyLeft}}
	case tea.KeyRight:
		return []application.Key{{Code: application.KeyRight}}
	case tea.KeyEnter:
		return []application.Key{{Code: application.KeyEnter}}
	case tea.KeyEsc:
		return []application.Key{{Code: application.KeyEsc}}
	case tea.KeyBackspace:
		return []application.Key{{Code: application.KeyBackspace}}
	default:
		return []application.Key{{Code: application.KeyOther}}
	}
}
