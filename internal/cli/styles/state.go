package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/themesync/internal/domain/entity"
)

// StateRenderer renders theme state for terminal output.
type StateRenderer struct {
	theme *Theme
}

// NewStateRenderer creates a renderer.
func NewStateRenderer(theme *Theme) *StateRenderer {
	return &StateRenderer{theme: theme}
}

func orUnknown(s entity.Scheme) string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

// RenderState renders the state as a small key/value block.
func (r *StateRenderer) RenderState(st entity.ThemeState, source string) string {
	t := r.theme
	var b strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", t.Subtle.Render(fmt.Sprintf("%-10s", label)), value)
	}

	row("resolved", t.Badge.Render(string(st.Resolved)))
	row("declared", t.Normal.Render(string(st.Declared)))
	ambient := orUnknown(st.Ambient)
	if source != "" {
		ambient += t.Subtle.Render(" (" + source + ")")
	}
	row("ambient", t.Normal.Render(ambient))
	if st.Locked() {
		row("forced", t.WarningStyle.Render(string(st.Forced)+" (locked)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderChange renders one line for a state transition.
func (r *StateRenderer) RenderChange(st entity.ThemeState) string {
	return fmt.Sprintf("%s %s",
		r.theme.Highlight.Render(string(st.Resolved)),
		r.theme.Subtle.Render(fmt.Sprintf("declared=%s ambient=%s", st.Declared, orUnknown(st.Ambient))),
	)
}

// RenderError renders an error message.
func (r *StateRenderer) RenderError(err error) string {
	return r.theme.ErrorStyle.Render("error: " + err.Error())
}
