package ui

import (
	"errors"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nvarley/shopkeep/internal/editor"
	"github.com/nvarley/shopkeep/internal/portal"
)

// editorPhase tracks the lifecycle of one edit session.
type editorPhase int

const (
	editorLoading editorPhase = iota
	editorNotFound
	editorFailed
	editorReady
)

// fieldOrder maps textinput positions to form fields. Description lives in
// its own multi-line widget after these.
var fieldOrder = [4]editor.Field{
	editor.FieldName,
	editor.FieldSKU,
	editor.FieldQuantity,
	editor.FieldPrice,
}

// Focus positions after the single-line fields.
const (
	editorFocusDesc   = len(fieldOrder)
	editorFocusImages = editorFocusDesc + 1
)

// editorState holds one product create/edit session: the scalar form, the
// image staging store, and the widgets around them. It is a pointer on the
// root model so staged previews have exactly one owner to dispose.
type editorState struct {
	productID  string // empty in create mode
	token      string // identifies this session in command results
	returnView View
	phase      editorPhase

	form    *editor.Form
	staging *editor.Staging

	inputs   [4]textinput.Model
	desc     textarea.Model
	focus    int // fields, then editorFocusDesc, then editorFocusImages
	imageSel int // selected logical index in the strip

	saving bool
	spin   spinner.Model

	picking bool
	picker  filepicker.Model

	width, height int
}

func newEditorState(theme Theme, returnView View, productID string) *editorState {
	prompts := [4]string{"Name     > ", "SKU      > ", "Quantity > ", "Price    > "}
	var inputs [4]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.CharLimit = 256
		inputs[i] = in
	}

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.SetHeight(3)
	desc.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	fp := filepicker.New()
	fp.ShowHidden = false
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	return &editorState{
		productID:  productID,
		token:      uuid.NewString(),
		returnView: returnView,
		phase:      editorReady,
		form:       &editor.Form{},
		staging:    editor.NewStaging(""),
		inputs:     inputs,
		desc:       desc,
		spin:       sp,
		picker:     fp,
	}
}

func (ed *editorState) resize(width, height int) {
	ed.width = width
	ed.height = height
	ed.picker.Height = max(5, height-8)
	ed.desc.SetWidth(max(20, width-8))
}

func (ed *editorState) dispose() {
	ed.staging.Dispose()
}

// syncForm copies the input widgets into the form store.
func (ed *editorState) syncForm() {
	for i, field := range fieldOrder {
		ed.form.Set(field, ed.inputs[i].Value())
	}
	ed.form.Set(editor.FieldDescription, ed.desc.Value())
}

// hydrate fills the session from a fetched product.
func (ed *editorState) hydrate(p portal.Product) {
	ed.form = editor.FormFromProduct(p)
	values := [4]string{ed.form.Name, ed.form.SKU, ed.form.Quantity, ed.form.Price}
	for i := range ed.inputs {
		ed.inputs[i].SetValue(values[i])
	}
	ed.desc.SetValue(ed.form.Description)
	ed.staging.Dispose()
	ed.staging = editor.NewStaging("")
	ed.staging.Hydrate(p.Images)
	ed.imageSel = 0
	ed.phase = editorReady
}

// openEditorCreate starts a blank create session.
func (m Model) openEditorCreate() (tea.Model, tea.Cmd) {
	m.editor = newEditorState(m.theme, m.currentView, "")
	m.editor.resize(m.width, m.height)
	m.currentView = ViewEditor
	return m, tea.Batch(m.editor.inputs[0].Focus(), textinput.Blink)
}

// openEditorEdit starts an edit session; the form stays blocked until the
// product arrives.
func (m Model) openEditorEdit(id string) (tea.Model, tea.Cmd) {
	ed := newEditorState(m.theme, m.currentView, id)
	ed.resize(m.width, m.height)
	ed.phase = editorLoading
	m.editor = ed
	m.currentView = ViewEditor
	return m, tea.Batch(ed.spin.Tick, fetchProductCmd(m.ctx, m.client, id))
}

// closeEditorView disposes the session and returns to the catalog.
func (m Model) closeEditorView() (tea.Model, tea.Cmd) {
	returnView := ViewProducts
	if m.editor != nil {
		returnView = m.editor.returnView
	}
	m.closeEditor()
	m.currentView = returnView
	m.refreshCatalogRows()
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed == nil {
		m.currentView = ViewProducts
		return m, nil
	}

	if ed.picking {
		if msg.String() == "esc" {
			ed.picking = false
			return m, nil
		}
		var cmd tea.Cmd
		ed.picker, cmd = ed.picker.Update(msg)
		if ok, p := ed.picker.DidSelectFile(msg); ok {
			ed.picking = false
			return m, readFileCmd(p)
		}
		return m, cmd
	}

	switch ed.phase {
	case editorLoading:
		if msg.String() == "esc" {
			return m.closeEditorView()
		}
		return m, nil

	case editorNotFound, editorFailed:
		switch msg.String() {
		case "r":
			ed.phase = editorLoading
			return m, tea.Batch(ed.spin.Tick, fetchProductCmd(m.ctx, m.client, ed.productID))
		case "esc", "q":
			return m.closeEditorView()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.closeEditorView()

	case "ctrl+s":
		return m.submitEditor()

	case "tab":
		return m.focusEditorIdx((ed.focus + 1) % (editorFocusImages + 1))

	case "shift+tab":
		return m.focusEditorIdx((ed.focus + editorFocusImages) % (editorFocusImages + 1))

	case "enter":
		// Enter advances through the single-line fields; the textarea keeps
		// it for newlines and the strip uses it for the primary selection.
		if ed.focus < editorFocusDesc {
			return m.focusEditorIdx(ed.focus + 1)
		}
	}

	switch {
	case ed.focus == editorFocusImages:
		return m.handleImageStripKey(msg)
	case ed.focus == editorFocusDesc:
		var cmd tea.Cmd
		ed.desc, cmd = ed.desc.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		ed.inputs[ed.focus], cmd = ed.inputs[ed.focus].Update(msg)
		return m, cmd
	}
}

func (m Model) handleImageStripKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	switch msg.String() {
	case "left", "h":
		if ed.imageSel > 0 {
			ed.imageSel--
		}
	case "right", "l":
		if ed.imageSel < ed.staging.Total()-1 {
			ed.imageSel++
		}
	case "p", "enter":
		if ed.staging.SelectPrimary(ed.imageSel) {
			return m, m.pushToast(toastInfo, "Primary image updated")
		}
	case "x", "d":
		return m.removeSelectedImage()
	case "a":
		ed.picking = true
		return m, ed.picker.Init()
	}
	return m, nil
}

func (m Model) removeSelectedImage() (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed.staging.Total() == 0 {
		return m, nil
	}

	nExisting := len(ed.staging.Existing())
	var err error
	var text string
	if ed.imageSel < nExisting {
		err = ed.staging.Remove(editor.SourceExisting, ed.imageSel)
		text = "Image marked for deletion"
	} else {
		err = ed.staging.Remove(editor.SourceStaged, ed.imageSel-nExisting)
		text = "Image removed"
	}
	if err != nil {
		return m, nil
	}
	if ed.imageSel >= ed.staging.Total() && ed.imageSel > 0 {
		ed.imageSel--
	}
	return m, m.pushToast(toastInfo, text)
}

// submitEditor runs validation, assembles the payload and fires the save.
// A save already in flight wins; the second ctrl+s is dropped.
func (m Model) submitEditor() (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed.saving {
		return m, nil
	}

	ed.syncForm()
	if ferr := ed.form.Validate(); ferr != nil {
		cmd := m.pushToast(toastError, ferr.Message)
		model, focusCmd := m.focusEditorField(ferr.Field)
		return model, tea.Batch(cmd, focusCmd)
	}

	if ed.staging.Total() == 0 {
		return m, m.pushToast(toastError, "At least one image is required")
	}

	mode := editor.ModeCreate
	if ed.productID != "" {
		mode = editor.ModeEdit
	}
	draft, err := editor.Assemble(ed.form, ed.staging, mode)
	if err != nil {
		return m, m.pushToast(toastError, "Select a primary image before saving")
	}

	ed.saving = true
	return m, tea.Batch(ed.spin.Tick, saveProductCmd(m.ctx, m.client, ed.token, ed.productID, draft))
}

func (m Model) focusEditorIdx(idx int) (tea.Model, tea.Cmd) {
	ed := m.editor
	ed.focus = idx
	var cmds []tea.Cmd
	for i := range ed.inputs {
		if i == idx {
			cmds = append(cmds, ed.inputs[i].Focus())
		} else {
			ed.inputs[i].Blur()
		}
	}
	if idx == editorFocusDesc {
		cmds = append(cmds, ed.desc.Focus())
	} else {
		ed.desc.Blur()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) focusEditorField(field editor.Field) (tea.Model, tea.Cmd) {
	if field == editor.FieldDescription {
		return m.focusEditorIdx(editorFocusDesc)
	}
	for i, f := range fieldOrder {
		if f == field {
			return m.focusEditorIdx(i)
		}
	}
	return m, nil
}

func (m Model) handleProductFetched(msg productFetchedMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed == nil || msg.id != ed.productID {
		return m, nil // stale fetch for a closed session
	}

	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m, logoutCmd(m.ctx, m.client)
		}
		if errorsIsNotFound(msg.err) {
			ed.phase = editorNotFound
			return m, nil
		}
		m.logger.Error("product fetch failed", "id", msg.id, "error", msg.err)
		ed.phase = editorFailed
		return m, nil
	}

	ed.hydrate(*msg.product)
	return m.focusEditorIdx(0)
}

func (m Model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed == nil || msg.token != ed.token {
		return m, nil // result of an abandoned session; this one is untouched
	}
	ed.saving = false

	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m, logoutCmd(m.ctx, m.client)
		}
		// Session state stays intact; the user can retry as-is.
		text := "Failed to update product"
		if msg.create {
			text = "Failed to create product"
		}
		m.logger.Error("save failed", "id", ed.productID, "error", msg.err)
		return m, m.pushToast(toastError, text)
	}

	text := "Product updated"
	if msg.create {
		text = "Product created"
	}
	model, cmd := m.closeEditorView()
	root := model.(Model)
	return root, tea.Batch(
		cmd,
		root.pushToast(toastSuccess, text),
		refreshCatalogCmd(root.ctx, root.client, root.store),
	)
}

func (m Model) handleFileRead(msg fileReadMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed == nil || ed.phase != editorReady {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Error("read picked file failed", "name", msg.name, "error", msg.err)
		return m, m.pushToast(toastError, "Could not read "+msg.name)
	}

	res, err := ed.staging.Admit([]editor.LocalFile{{Name: msg.name, Data: msg.data}})
	if err != nil {
		m.logger.Error("stage image failed", "name", msg.name, "error", err)
		return m, m.pushToast(toastError, "Could not stage "+msg.name)
	}
	return m, tea.Batch(m.admitToasts(res)...)
}

// updateEditorComponents forwards frame and traversal messages.
func (m Model) updateEditorComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed == nil {
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	if ed.picking {
		ed.picker, cmd = ed.picker.Update(msg)
		cmds = append(cmds, cmd)
		if ok, p := ed.picker.DidSelectFile(msg); ok {
			ed.picking = false
			cmds = append(cmds, readFileCmd(p))
		}
	}
	if ed.phase == editorLoading || ed.saving {
		ed.spin, cmd = ed.spin.Update(msg)
		cmds = append(cmds, cmd)
	}
	if ed.phase == editorReady {
		switch {
		case ed.focus == editorFocusDesc:
			ed.desc, cmd = ed.desc.Update(msg)
			cmds = append(cmds, cmd)
		case ed.focus < editorFocusDesc:
			ed.inputs[ed.focus], cmd = ed.inputs[ed.focus].Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// Rendering

func (m Model) renderEditor() string {
	ed := m.editor
	if ed == nil {
		return ""
	}
	s := m.styles

	title := "New product"
	if ed.productID != "" {
		title = "Edit product"
	}

	var b strings.Builder
	b.WriteString(s.Logo.Render("SHOPKEEP"))
	b.WriteString(s.MutedText.Render("  " + title))
	b.WriteString("\n\n")

	switch ed.phase {
	case editorLoading:
		b.WriteString(ed.spin.View())
		b.WriteString(s.Text.Render(" Loading product..."))
		b.WriteString("\n\n")
		b.WriteString(s.MutedText.Render("esc: back"))
		return b.String()

	case editorNotFound:
		b.WriteString(s.WarningText.Render("Product not found."))
		b.WriteString("\n")
		b.WriteString(s.MutedText.Render("It may have been deleted elsewhere."))
		b.WriteString("\n\n")
		b.WriteString(s.MutedText.Render("r: retry  esc: back"))
		return b.String()

	case editorFailed:
		b.WriteString(s.DangerText.Render("Could not load the product."))
		b.WriteString("\n\n")
		b.WriteString(s.MutedText.Render("r: retry  esc: back"))
		return b.String()
	}

	if ed.picking {
		b.WriteString(s.Text.Render("Pick an image file"))
		b.WriteString("\n\n")
		b.WriteString(ed.picker.View())
		b.WriteString("\n")
		b.WriteString(s.MutedText.Render("enter: select  esc: cancel"))
		return b.String()
	}

	for i := range ed.inputs {
		b.WriteString(ed.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.MutedText.Render("Description"))
	b.WriteString("\n")
	b.WriteString(ed.desc.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderImageStrip())
	b.WriteString("\n")

	if ed.saving {
		b.WriteString(ed.spin.View())
		b.WriteString(s.InfoText.Render(" Saving..."))
	} else {
		hints := "tab: next field  ctrl+s: save  esc: cancel"
		if ed.focus == editorFocusImages {
			hints = "h/l: select  p: primary  x: remove  a: add  tab: form  ctrl+s: save  esc: cancel"
		}
		b.WriteString(s.Footer.Render(hints))
	}

	if t := m.renderToast(); t != "" {
		b.WriteString("\n")
		b.WriteString(t)
	}
	return b.String()
}

// renderImageStrip draws both collections in logical order with the primary
// marker and the pending deletion count.
func (m Model) renderImageStrip() string {
	ed := m.editor
	s := m.styles

	header := "Images"
	if ed.focus == editorFocusImages {
		header = "Images (focused)"
	}

	var b strings.Builder
	b.WriteString(s.AccentText.Render(header))
	b.WriteString(s.MutedText.Render(
		"  " + strconv.Itoa(ed.staging.Total()) + "/" + strconv.Itoa(editor.MaxImages)))
	b.WriteString("\n")

	if ed.staging.Total() == 0 {
		b.WriteString(s.MutedText.Render("  none yet; press a in the image strip to add"))
		b.WriteString("\n")
	}

	logical := 0
	for _, img := range ed.staging.Existing() {
		b.WriteString(m.renderImageLine(logical, path.Base(img.ImageURL), "persisted"))
		logical++
	}
	for _, img := range ed.staging.Staged() {
		b.WriteString(m.renderImageLine(logical, img.Name, "staged "+formatBytes(int64(len(img.Data)))))
		logical++
	}

	if ed.focus == editorFocusImages {
		if sel := ed.imageSel - len(ed.staging.Existing()); sel >= 0 && sel < len(ed.staging.Staged()) {
			b.WriteString(s.MutedText.Render(
				"  preview: " + truncateMiddle(ed.staging.Staged()[sel].Preview.Path(), 48)))
			b.WriteString("\n")
		}
	}

	if n := len(ed.staging.Deletions()); n > 0 {
		b.WriteString(s.WarningText.Render(
			"  " + strconv.Itoa(n) + " " + pluralize(n, "image", "images") + " will be deleted on save"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderImageLine(logical int, name, note string) string {
	ed := m.editor
	s := m.styles

	marker := "  "
	if p, ok := ed.staging.Primary(); ok && p == logical {
		marker = s.SuccessText.Render("* ")
	}

	line := marker + truncate(name, 36) + "  " + s.MutedText.Render(note)
	if ed.focus == editorFocusImages && ed.imageSel == logical {
		line = s.Selected.Render("> " + truncate(name, 36) + "  " + note)
	}
	return "  " + line + "\n"
}

// errorsIsNotFound keeps the portal sentinel check in one place.
func errorsIsNotFound(err error) bool {
	return errors.Is(err, portal.ErrNotFound)
}
