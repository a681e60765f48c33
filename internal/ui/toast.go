package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvarley/shopkeep/internal/editor"
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 4 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarning
	toastError
)

// toast is a transient one-line notification rendered in the footer area.
type toast struct {
	id    int
	level toastLevel
	text  string
}

type toastExpiredMsg struct {
	id int
}

// pushToast replaces the current notification and schedules its expiry.
func (m *Model) pushToast(level toastLevel, text string) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, level: level, text: text}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	s := m.styles
	var style = s.InfoText
	switch m.toast.level {
	case toastSuccess:
		style = s.SuccessText
	case toastWarning:
		style = s.WarningText
	case toastError:
		style = s.DangerText
	}
	return style.Render(truncate(m.toast.text, max(0, m.width-2)))
}

// rejectionText translates a gate rejection into user-facing wording.
func rejectionText(r editor.Rejection) string {
	switch r.Reason {
	case editor.RejectLimit:
		if r.AllowedMore <= 0 {
			return fmt.Sprintf("Image limit reached (%d per product)", editor.MaxImages)
		}
		return fmt.Sprintf("Too many images; only %d more %s allowed",
			r.AllowedMore, pluralize(r.AllowedMore, "is", "are"))
	case editor.RejectType:
		return fmt.Sprintf("%s is not an image", r.Name)
	case editor.RejectSize:
		return fmt.Sprintf("%s exceeds the %s upload limit", r.Name, formatBytes(editor.MaxFileSize))
	default:
		return "File was rejected"
	}
}

// admitToasts turns an Admit outcome into notification commands. Returns nil
// when nothing needs reporting.
func (m *Model) admitToasts(res editor.AdmitResult) []tea.Cmd {
	var cmds []tea.Cmd
	if res.Batch != nil {
		cmds = append(cmds, m.pushToast(toastWarning, rejectionText(*res.Batch)))
		return cmds
	}
	for _, rej := range res.Rejected {
		cmds = append(cmds, m.pushToast(toastWarning, rejectionText(rej)))
	}
	if res.Accepted > 0 {
		cmds = append(cmds, m.pushToast(toastSuccess,
			fmt.Sprintf("Added %d %s", res.Accepted, pluralize(res.Accepted, "image", "images"))))
	}
	return cmds
}
