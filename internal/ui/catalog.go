package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvarley/shopkeep/internal/portal"
)

// catalogState drives the product and favourites tables. Both views share
// one table widget; the row set is rebuilt from the snapshot on every change.
type catalogState struct {
	table     table.Model
	search    textinput.Model
	searching bool
	rowIDs    []string // product id per visible row

	// Pending delete confirmation, nil when no modal is up.
	confirmDelete *portal.Product
}

func newCatalogState(theme Theme) catalogState {
	columns := []table.Column{
		{Title: "Name", Width: 32},
		{Title: "SKU", Width: 14},
		{Title: "Qty", Width: 6},
		{Title: "Price", Width: 10},
		{Title: "Fav", Width: 4},
		{Title: "Images", Width: 7},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	search := textinput.New()
	search.Placeholder = "name or sku"
	search.Prompt = "/ "
	search.CharLimit = 64

	c := catalogState{table: t, search: search}
	c.applyTheme(theme)
	return c
}

func (c *catalogState) applyTheme(theme Theme) {
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))
	st.Selected = st.Selected.
		Background(lipgloss.Color(theme.SelectionBg)).
		Foreground(lipgloss.Color(theme.SelectionText)).
		Bold(false)
	c.table.SetStyles(st)
}

func (c *catalogState) resize(width, height int) {
	// Header, command bar, toast line, search line and table chrome.
	h := height - 7
	if h < 3 {
		h = 3
	}
	c.table.SetHeight(h)
	c.table.SetWidth(width)
}

// visibleProducts applies the view scope and the search filter.
func (m Model) visibleProducts() []portal.Product {
	items := m.snapshot.Products
	if m.currentView == ViewFavourites {
		items = m.snapshot.Favourites
	}

	query := strings.ToLower(strings.TrimSpace(m.catalog.search.Value()))
	if query == "" {
		return items
	}
	var out []portal.Product
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.SKU), query) {
			out = append(out, p)
		}
	}
	return out
}

// refreshCatalogRows rebuilds the table rows from the current snapshot.
func (m *Model) refreshCatalogRows() {
	items := m.visibleProducts()
	rows := make([]table.Row, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, p := range items {
		fav := ""
		if p.IsFavourite {
			fav = "*"
		}
		rows = append(rows, table.Row{
			truncate(p.Name, 32),
			p.SKU,
			strconv.Itoa(p.Quantity),
			formatPrice(p.Price),
			fav,
			strconv.Itoa(len(p.Images)),
		})
		ids = append(ids, p.ID)
	}
	m.catalog.table.SetRows(rows)
	m.catalog.rowIDs = ids
	if cur := m.catalog.table.Cursor(); cur >= len(rows) && len(rows) > 0 {
		m.catalog.table.SetCursor(len(rows) - 1)
	}
}

// selectedProduct returns the product under the cursor, if any.
func (m Model) selectedProduct() (portal.Product, bool) {
	cur := m.catalog.table.Cursor()
	if cur < 0 || cur >= len(m.catalog.rowIDs) {
		return portal.Product{}, false
	}
	id := m.catalog.rowIDs[cur]
	for _, p := range m.visibleProducts() {
		if p.ID == id {
			return p, true
		}
	}
	return portal.Product{}, false
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Delete confirmation modal swallows everything.
	if m.catalog.confirmDelete != nil {
		return m.handleConfirmDeleteKey(msg)
	}

	// Search input captures typing until enter or esc.
	if m.catalog.searching {
		switch msg.String() {
		case "enter":
			m.catalog.searching = false
			m.catalog.search.Blur()
			return m, nil
		case "esc":
			m.catalog.searching = false
			m.catalog.search.Blur()
			m.catalog.search.SetValue("")
			m.refreshCatalogRows()
			return m, nil
		}
		var cmd tea.Cmd
		m.catalog.search, cmd = m.catalog.search.Update(msg)
		m.refreshCatalogRows()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.catalog.searching = true
		return m, m.catalog.search.Focus()

	case "esc":
		if m.catalog.search.Value() != "" {
			m.catalog.search.SetValue("")
			m.refreshCatalogRows()
		}
		return m, nil

	case "v", "tab":
		if m.currentView == ViewProducts {
			m.currentView = ViewFavourites
		} else {
			m.currentView = ViewProducts
		}
		m.refreshCatalogRows()
		m.savePrefs()
		return m, nil

	case "n":
		return m.openEditorCreate()

	case "enter":
		if p, ok := m.selectedProduct(); ok {
			return m.openEditorEdit(p.ID)
		}
		return m, nil

	case "f":
		if p, ok := m.selectedProduct(); ok {
			return m, toggleFavouriteCmd(m.ctx, m.client, p.ID)
		}
		return m, nil

	case "d":
		if p, ok := m.selectedProduct(); ok {
			m.catalog.confirmDelete = &p
		}
		return m, nil

	case "r":
		return m, refreshCatalogCmd(m.ctx, m.client, m.store)

	case "T":
		m.cycleTheme()
		return m, nil

	case "L":
		return m, logoutCmd(m.ctx, m.client)
	}

	var cmd tea.Cmd
	m.catalog.table, cmd = m.catalog.table.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.catalog.confirmDelete
	switch msg.String() {
	case "y", "enter":
		m.catalog.confirmDelete = nil
		return m, deleteProductCmd(m.ctx, m.client, target.ID)
	case "n", "esc":
		m.catalog.confirmDelete = nil
		return m, nil
	}
	return m, nil
}

func (m Model) updateCatalogComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.catalog.searching {
		m.catalog.search, cmd = m.catalog.search.Update(msg)
	}
	return m, cmd
}

func (m Model) renderCatalog() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.catalog.searching || m.catalog.search.Value() != "" {
		b.WriteString(m.catalog.search.View())
		b.WriteString("\n")
	}

	if len(m.catalog.rowIDs) == 0 {
		empty := "No products yet. Press n to add one."
		if m.currentView == ViewFavourites {
			empty = "No favourites yet. Press f on a product to add one."
		}
		if m.catalog.search.Value() != "" {
			empty = "Nothing matches the current search."
		}
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("  " + empty))
		b.WriteString("\n")
	} else {
		b.WriteString(m.catalog.table.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderCommandBar())
	if t := m.renderToast(); t != "" {
		b.WriteString("\n")
		b.WriteString(t)
	}

	out := b.String()
	if m.catalog.confirmDelete != nil {
		return m.renderConfirmDelete(out)
	}
	return out
}

// renderConfirmDelete draws the delete modal centered over the catalog.
func (m Model) renderConfirmDelete(_ string) string {
	s := m.styles
	target := m.catalog.confirmDelete

	var b strings.Builder
	b.WriteString(s.DangerText.Render("Delete product?"))
	b.WriteString("\n\n")
	b.WriteString(s.Text.Render(truncate(target.Name, 40)))
	b.WriteString("\n")
	b.WriteString(s.MutedText.Render("SKU " + target.SKU))
	b.WriteString("\n\n")
	b.WriteString(s.MutedText.Render("y: delete  n: cancel"))

	panel := s.PanelFocus.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
