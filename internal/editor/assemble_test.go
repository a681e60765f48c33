package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_CreateMode(t *testing.T) {
	s := NewStaging(t.TempDir())
	defer s.Dispose()
	mustAdmit(t, s, pngFile("a.png", 64), pngFile("b.png", 64))
	require.True(t, s.SelectPrimary(1))

	draft, err := Assemble(validForm(), s, ModeCreate)
	require.NoError(t, err)

	assert.Equal(t, "Desk Lamp", draft.Name)
	assert.Equal(t, "LAMP-01", draft.SKU)
	assert.Equal(t, "4", draft.Quantity)
	assert.Equal(t, "19.99", draft.Price)
	assert.Equal(t, 1, draft.PrimaryImageIndex)
	require.Len(t, draft.Images, 2)
	assert.Equal(t, "a.png", draft.Images[0].Filename)
	assert.Nil(t, draft.ImagesToDelete)
}

func TestAssemble_EditModeCarriesDeletions(t *testing.T) {
	s := NewStaging(t.TempDir())
	defer s.Dispose()
	s.Hydrate(existingImages("imgX"))
	require.NoError(t, s.Remove(SourceExisting, 0))
	mustAdmit(t, s, pngFile("a.png", 64))
	require.True(t, s.SelectPrimary(0))

	draft, err := Assemble(validForm(), s, ModeEdit)
	require.NoError(t, err)

	assert.Equal(t, []string{"imgX"}, draft.ImagesToDelete)
	require.Len(t, draft.Images, 1)
	assert.Equal(t, "a.png", draft.Images[0].Filename)
	assert.Equal(t, 0, draft.PrimaryImageIndex)
}

func TestAssemble_EditModeWithNoDeletions(t *testing.T) {
	s := NewStaging(t.TempDir())
	defer s.Dispose()
	s.Hydrate(existingImages("imgX"))
	require.True(t, s.SelectPrimary(0))

	draft, err := Assemble(validForm(), s, ModeEdit)
	require.NoError(t, err)
	// Update payloads always carry the list, even empty.
	assert.NotNil(t, draft.ImagesToDelete)
	assert.Empty(t, draft.ImagesToDelete)
	assert.Empty(t, draft.Images)
}

func TestAssemble_RequiresPrimary(t *testing.T) {
	s := NewStaging(t.TempDir())
	s.Hydrate(existingImages("imgX"))

	_, err := Assemble(validForm(), s, ModeEdit)
	assert.Error(t, err)
}

func TestAssemble_Pure(t *testing.T) {
	s := NewStaging(t.TempDir())
	defer s.Dispose()
	mustAdmit(t, s, pngFile("a.png", 64))

	first, err := Assemble(validForm(), s, ModeCreate)
	require.NoError(t, err)
	second, err := Assemble(validForm(), s, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssemble_PrimaryReadFresh(t *testing.T) {
	s := NewStaging(t.TempDir())
	defer s.Dispose()
	mustAdmit(t, s, pngFile("a.png", 64), pngFile("b.png", 64))

	draft, err := Assemble(validForm(), s, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, 0, draft.PrimaryImageIndex)

	require.True(t, s.SelectPrimary(1))
	draft, err = Assemble(validForm(), s, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, 1, draft.PrimaryImageIndex)
}
