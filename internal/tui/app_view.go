package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width == 0 {
		return "Caricamento…"
	}

	header := m.viewHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), " │ ", m.viewChat())
	footer := styleMuted().Render(m.footerHelp())
	base := strings.Join([]string{header, body, footer}, "\n\n")

	switch m.modal {
	case modalCreateCollection:
		return m.placeCentered(m.viewCreateModal())
	case modalJobDetails:
		return m.placeCentered(m.viewJobDetailsModal())
	case modalPickModel:
		return m.placeCentered(renderModalBox(m.width, "Seleziona modello",
			m.modelList.View()+"\n\n"+styleMuted().Render("invio: seleziona   esc: annulla")))
	case modalLogin:
		return m.placeCentered(m.viewLoginModal())
	}
	return base
}

func (m appModel) viewHeader() string {
	title := styleAccent().Render("DocsLM")
	identity := m.greeting
	if m.user != nil {
		identity = fmt.Sprintf("%s — %s (%s)", m.greeting, m.user.Role, m.user.Initial)
	}
	return title + "  " + styleMuted().Render(identity)
}

func (m appModel) footerHelp() string {
	if m.pane == paneChat {
		return "invio: invia   ctrl+o: modello   tab: ricerca   ctrl+l: accedi   ctrl+c: esci"
	}
	return "invio: cerca/seleziona   i: dettagli   tab: chat   ctrl+l: accedi   ctrl+c: esci"
}

func (m appModel) viewSidebar() string {
	w := m.sidebarWidth()
	var b strings.Builder

	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(styleMuted().Render("Ricerca…"))
	case m.searchErr != "":
		b.WriteString(styleError().Render(xansi.Truncate(m.searchErr, w, "…")))
	case m.selectedJob != nil:
		b.WriteString(m.viewSelectedJob(w))
	case m.results != nil:
		b.WriteString(m.viewResults(w))
	default:
		b.WriteString(styleMuted().Render("Cerca una commessa per iniziare."))
	}

	return lipgloss.NewStyle().Width(w).Render(b.String())
}

func (m appModel) viewResults(w int) string {
	if len(m.results) == 0 {
		return styleMuted().Render("Nessun risultato")
	}
	var rows []string
	for i, job := range m.results {
		line := xansi.Truncate(job.Code, w-4, "…")
		if m.sidebarFocus == sidebarFocusList && i == m.resultIdx {
			rows = append(rows, styleSelected().Render("▸ "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	return strings.Join(rows, "\n")
}

func (m appModel) viewSelectedJob(w int) string {
	job := *m.selectedJob
	var b strings.Builder

	b.WriteString(styleAccent().Render("Commessa: " + job.Code))
	b.WriteString("\n")
	b.WriteString(jobSummary(job, w))
	b.WriteString("\n\n")

	// Collections section: create row first, then the cards.
	rows := []string{"Crea nuovo Notebook  +"}
	for _, col := range m.collections {
		label := col.DisplayName
		if col.Name == m.selectedCollection {
			label = "● " + label
		}
		rows = append(rows, label)
	}
	for i, row := range rows {
		line := xansi.Truncate(row, w-4, "…")
		if m.sidebarFocus == sidebarFocusList && i == m.detailIdx {
			b.WriteString(styleSelected().Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	switch {
	case m.collectionsLoading:
		b.WriteString(styleMuted().Render("Caricamento collezioni…"))
	case m.collectionsErr != "":
		b.WriteString(styleError().Render(m.collectionsErr))
	case len(m.collections) == 0:
		b.WriteString(styleMuted().Render("Nessun notebook per questa commessa."))
	}

	if m.selectedCollection != "" {
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("File in " + m.selectedCollection + ":"))
		b.WriteString("\n")
		switch {
		case m.collectionFilesErr != "":
			b.WriteString(styleError().Render(m.collectionFilesErr))
		case len(m.collectionFiles) == 0:
			b.WriteString(styleMuted().Render("  (nessun file registrato)"))
		default:
			for _, f := range m.collectionFiles {
				b.WriteString("  " + xansi.Truncate(f.Name, w-4, "…") + "\n")
			}
		}
	}

	return b.String()
}

func (m appModel) viewChat() string {
	w := m.width - m.sidebarWidth() - 3
	if w < 30 {
		w = 30
	}
	var b strings.Builder

	b.WriteString(styleMuted().Render("Modello: ") + m.chatModel)
	b.WriteString("\n\n")

	for _, entry := range m.chatLog {
		if entry.role == chatRoleUser {
			b.WriteString(styleAccent().Render("Tu: ") + entry.text)
		} else {
			b.WriteString(renderMarkdown(entry.text, w-2))
		}
		b.WriteString("\n\n")
	}
	if m.chatBusy {
		b.WriteString(m.spinner.View() + styleMuted().Render(" in attesa della risposta…"))
		b.WriteString("\n\n")
	}
	if m.chatErr != "" {
		b.WriteString(styleError().Render(m.chatErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.chatInput.View())
	return lipgloss.NewStyle().Width(w).Render(b.String())
}

func (m appModel) viewCreateModal() string {
	bodyW := modalBodyWidth(m.width)

	switch m.createPhase {
	case createSubmitting:
		return renderModalBox(m.width, "Crea nuovo Notebook",
			m.spinner.View()+" Creazione in corso…")
	case createSucceeded:
		return renderModalBox(m.width, "Crea nuovo Notebook",
			styleSuccess().Render("Notebook creato."))
	}

	var b strings.Builder
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render(strings.Join(breadcrumbs(m.browser.subpath), " / ")))
	b.WriteString("\n")

	switch {
	case m.browser.loading:
		b.WriteString(styleMuted().Render("Caricamento…"))
	case m.browser.errMsg != "":
		b.WriteString(styleError().Render(m.browser.errMsg))
	case len(m.browser.entries) == 0:
		b.WriteString(styleMuted().Render("Cartella vuota"))
	default:
		for i, entry := range m.browser.entries {
			var line string
			if entry.IsDir {
				line = "▸ " + entry.Name + "/"
			} else {
				mark := "☐"
				if m.fileChecked(entryPath(m.browser.subpath, entry.Name)) {
					mark = "☑"
				}
				line = fmt.Sprintf("%s %s  %s", mark, entry.Name, styleMuted().Render(formatSize(entry.Size)))
			}
			line = xansi.Truncate(line, bodyW-2, "…")
			if m.createFocus == createFocusBrowser && i == m.browser.cursor {
				line = styleSelected().Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf("%d file selezionati", len(m.pendingFiles))))
	if m.createErr != "" {
		b.WriteString("\n")
		b.WriteString(styleError().Render(m.createErr))
	}
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("tab: campo/file   spazio: seleziona   invio: apri/conferma   ctrl+s: crea   esc: chiudi"))

	return renderModalBox(m.width, "Crea nuovo Notebook — "+m.activeJobForCreation, b.String())
}

func (m appModel) viewJobDetailsModal() string {
	job := m.cursorJob()
	if job == nil {
		return renderModalBox(m.width, "Dettagli", "Nessuna commessa selezionata.")
	}
	body := strings.Join(jobDetailRows(*job), "\n") +
		"\n\n" + styleMuted().Render("esc: chiudi")
	return renderModalBox(m.width, "Commessa "+job.Code, body)
}

func (m appModel) viewLoginModal() string {
	var b strings.Builder
	b.WriteString(m.loginInput.View())
	b.WriteString("\n")
	if m.loginBusy {
		b.WriteString(styleMuted().Render("Accesso in corso…"))
	} else if m.loginErr != "" {
		b.WriteString(styleError().Render(m.loginErr))
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("invio: accedi   esc: annulla"))
	return renderModalBox(m.width, "Accedi", b.String())
}

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 72 {
		w = 72
	}
	if w < 32 {
		w = 32
	}
	return w
}

// renderModalBox draws a titled surface for modal content. No nested borders:
// some terminals show background artifacts when bordered components nest
// inside a colored modal.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Background(colorModalHeaderBg).
		Foreground(colorSurfaceFg).
		Width(bodyW).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Render(header + "\n" + body)
}

func (m appModel) placeCentered(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
