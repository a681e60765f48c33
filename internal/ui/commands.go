package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvarley/shopkeep/internal/portal"
	"github.com/nvarley/shopkeep/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type loginResultMsg struct {
	user *portal.User
	err  error
}

type logoutDoneMsg struct {
	err error
}

type productFetchedMsg struct {
	id      string
	product *portal.Product
	err     error
}

type saveResultMsg struct {
	token  string // session that issued the save
	create bool
	err    error
}

type deleteResultMsg struct {
	id  string
	err error
}

type favouriteResultMsg struct {
	id  string
	err error
}

type fileReadMsg struct {
	name string
	data []byte
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func loginCmd(ctx context.Context, client portal.API, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := client.Login(ctx, email, password)
		return loginResultMsg{user: user, err: err}
	}
}

func logoutCmd(ctx context.Context, client portal.API) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: client.Logout(ctx)}
	}
}

// refreshCatalogCmd fetches the catalog immediately, outside the background
// refresher's cadence, and records the result in the shared store.
func refreshCatalogCmd(ctx context.Context, client portal.API, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		products, err := client.ListProducts(ctx)
		if err != nil {
			store.Update(nil, nil, err)
			return snapshotMsg(store.Snapshot())
		}
		favourites, err := client.ListFavourites(ctx)
		if err != nil {
			store.Update(nil, nil, err)
			return snapshotMsg(store.Snapshot())
		}
		store.Update(products, favourites, nil)
		return snapshotMsg(store.Snapshot())
	}
}

func fetchProductCmd(ctx context.Context, client portal.API, id string) tea.Cmd {
	return func() tea.Msg {
		product, err := client.GetProduct(ctx, id)
		return productFetchedMsg{id: id, product: product, err: err}
	}
}

func saveProductCmd(ctx context.Context, client portal.API, token, id string, draft portal.Draft) tea.Cmd {
	create := id == ""
	return func() tea.Msg {
		var err error
		if create {
			_, err = client.CreateProduct(ctx, draft)
		} else {
			_, err = client.UpdateProduct(ctx, id, draft)
		}
		return saveResultMsg{token: token, create: create, err: err}
	}
}

func deleteProductCmd(ctx context.Context, client portal.API, id string) tea.Cmd {
	return func() tea.Msg {
		return deleteResultMsg{id: id, err: client.DeleteProduct(ctx, id)}
	}
}

func toggleFavouriteCmd(ctx context.Context, client portal.API, id string) tea.Cmd {
	return func() tea.Msg {
		return favouriteResultMsg{id: id, err: client.ToggleFavourite(ctx, id)}
	}
}

// readFileCmd loads a picked file into memory for the upload gate.
func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return fileReadMsg{name: filepath.Base(path), data: data, err: err}
	}
}
