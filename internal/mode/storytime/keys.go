package storytime

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the reading-screen bindings. Letters act in browse mode;
// while composing an utterance every printable key belongs to the input
// line and only esc (blur) and enter (speak) are intercepted.
type KeyMap struct {
	Compose    key.Binding
	Speak      key.Binding
	Edit       key.Binding
	AddPhrase  key.Binding
	Reload     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Back       key.Binding
	Quit       key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the standard reading-screen bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Compose: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "speak a line"),
		),
		Speak: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play the cue"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit story"),
		),
		AddPhrase: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add key word"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload story"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up", "pgup"),
			key.WithHelp("k/j", "scroll"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down", "pgdown"),
			key.WithHelp("j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to stories"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Compose, k.Speak, k.AddPhrase, k.Back, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Compose, k.Speak, k.Edit},
		{k.AddPhrase, k.Reload, k.ScrollUp},
		{k.Back, k.Quit, k.Help},
	}
}
