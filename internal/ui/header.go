package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader draws the top bar: logo, view name, account, freshness.
func (m Model) renderHeader() string {
	s := m.styles

	viewName := "Products"
	if m.currentView == ViewFavourites {
		viewName = "Favourites"
	}

	left := s.Logo.Render("SHOPKEEP") + s.MutedText.Render("  "+viewName)

	var parts []string
	if m.snapshot.User != nil {
		parts = append(parts, truncate(m.snapshot.User.Name, 24))
	}
	parts = append(parts, fmt.Sprintf("%d %s",
		len(m.catalog.rowIDs), pluralize(len(m.catalog.rowIDs), "item", "items")))

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, s.DangerText.Render("offline"))
	case m.snapshot.LastError != nil:
		parts = append(parts, s.WarningText.Render("refresh failed"))
	case !m.snapshot.LastUpdated.IsZero():
		parts = append(parts, "updated "+m.snapshot.LastUpdated.Format("15:04:05"))
	}

	right := s.MutedText.Render(strings.Join(parts, "  |  "))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return s.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderCommandBar draws the key hints for the catalog views.
func (m Model) renderCommandBar() string {
	hints := []string{
		"enter: edit",
		"n: new",
		"f: favourite",
		"d: delete",
		"/: search",
		"v: favourites",
		"r: refresh",
		"T: theme",
		"L: logout",
		"q: quit",
	}
	if m.currentView == ViewFavourites {
		hints[5] = "v: products"
	}
	return m.styles.Footer.Width(m.width).Render(truncate(strings.Join(hints, "  "), max(0, m.width-2)))
}
