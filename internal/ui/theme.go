// ABOUTME: Explicit view state for the dark-mode toggle.
// ABOUTME: Applies the theme class to themeable elements and persists it.

package ui

import "strings"

// DarkModeClass is the class added to themeable elements in dark mode.
const DarkModeClass = "dark-mode"

// ViewState is the UI state that lives outside the material collection.
type ViewState struct {
	Dark bool
}

// Toggled returns the state with dark mode flipped.
func (v ViewState) Toggled() ViewState {
	v.Dark = !v.Dark
	return v
}

// Themeable is anything that can carry the theme class.
type Themeable interface {
	AddClass(name string)
	RemoveClass(name string)
}

// ApplyTheme brings every element in line with state.
func ApplyTheme(state ViewState, elems ...Themeable) {
	for _, el := range elems {
		if el == nil {
			continue
		}
		if state.Dark {
			el.AddClass(DarkModeClass)
		} else {
			el.RemoveClass(DarkModeClass)
		}
	}
}

// ThemeStore persists the dark-mode flag between sessions.
type ThemeStore interface {
	LoadDarkMode() (bool, error)
	SaveDarkMode(dark bool) error
}

// LoadViewState reads the persisted state; a nil store means defaults.
func LoadViewState(ts ThemeStore) (ViewState, error) {
	if ts == nil {
		return ViewState{}, nil
	}
	dark, err := ts.LoadDarkMode()
	if err != nil {
		return ViewState{}, err
	}
	return ViewState{Dark: dark}, nil
}

// SaveViewState persists state; a nil store is a no-op.
func SaveViewState(ts ThemeStore, state ViewState) error {
	if ts == nil {
		return nil
	}
	return ts.SaveDarkMode(state.Dark)
}

// ClassList is a Themeable set of CSS classes, kept in insertion order.
type ClassList struct {
	classes []string
}

func NewClassList(classes ...string) *ClassList {
	cl := &ClassList{}
	for _, c := range classes {
		cl.AddClass(c)
	}
	return cl
}

func (c *ClassList) AddClass(name string) {
	if name == "" || c.Has(name) {
		return
	}
	c.classes = append(c.classes, name)
}

func (c *ClassList) RemoveClass(name string) {
	out := c.classes[:0]
	for _, existing := range c.classes {
		if existing != name {
			out = append(out, existing)
		}
	}
	c.classes = out
}

func (c *ClassList) Has(name string) bool {
	for _, existing := range c.classes {
		if existing == name {
			return true
		}
	}
	return false
}

// String renders the list as a class attribute value.
func (c *ClassList) String() string {
	return strings.Join(c.classes, " ")
}
