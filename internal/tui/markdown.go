package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per wrap width. Creating one with WithAutoStyle can
	// trigger terminal queries that block on some terminals, so a fixed style
	// is used instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// renderMarkdown renders agent replies for the chat log. On any renderer
// error the raw text is returned unchanged.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
