package components

import (
	"github.com/avitaltamir/swipedeck/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// Component is the content of one swipeable pane. Models are values: every
// mutating call returns the updated component.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string

	// Focus marks the component as belonging to the current pane
	Focus() Component
	// Blur marks the component as resting off-screen
	Blur() Component
	Focused() bool

	// SetSize updates the content dimensions, excluding the pane frame
	SetSize(width, height int) Component
	Size() (width, height int)

	// Title is the pane title shown in the frame and status bar
	Title() string
	// Frame describes what the pane frame shows around the content
	Frame() theme.PanelTitleOptions

	// Close releases processes and files held by the component
	Close() error
}

// Base provides common functionality for all components.
// Embed this in your component structs to get default implementations.
type Base struct {
	id      string
	title   string
	focused bool
	width   int
	height  int
}

// NewBase creates a Base for the pane with the given id and title.
func NewBase(id, title string) Base {
	return Base{id: id, title: title}
}

// ID returns the pane id the component reports messages under.
func (b Base) ID() string {
	return b.id
}

// Title returns the pane title.
func (b Base) Title() string {
	return b.title
}

// Focus sets the focused state to true.
func (b *Base) Focus() {
	b.focused = true
}

// Blur sets the focused state to false.
func (b *Base) Blur() {
	b.focused = false
}

// Focused returns the current focus state.
func (b Base) Focused() bool {
	return b.focused
}

// SetSize updates the component's dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
}

// Size returns the component's current dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}
