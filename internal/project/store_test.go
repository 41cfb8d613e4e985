package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/millworks/cutlist/internal/model"
)

func storeFixture() *model.Snapshot {
	snap := model.NewSnapshot()
	snap.KerfMM = 3
	snap.Priority = model.PriorityOffcut
	snap.Parts = []model.Part{{
		ID: "p1", Label: "Side", LengthMM: 720, WidthMM: 560,
		ThicknessMM: 18, Quantity: 2, MaterialID: "b1",
	}}
	snap.Boards = []model.BoardMaterial{{
		ID: "b1", Name: "MFC", SheetLengthMM: 2800, SheetWidthMM: 2070,
		ThicknessMM: 18, Role: model.RolePrimary, IsDefault: true,
	}}
	return &snap
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	want := storeFixture()

	require.NoError(t, store.Save("kitchen-01", want))

	got, err := store.Load("kitchen-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestFileStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "items")
	store := NewFileStore(dir)

	require.NoError(t, store.Save("item", storeFixture()))

	_, err := os.Stat(filepath.Join(dir, "item.json"))
	assert.NoError(t, err)
}

func TestFileStore_MissingItemLoadsNil(t *testing.T) {
	store := NewFileStore(t.TempDir())

	snap, err := store.Load("never-saved")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFileStore_StaleVersionLoadsNil(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	old := storeFixture()
	old.Version = model.SnapshotVersion - 1
	data, err := json.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.json"), data, 0644))

	snap, err := store.Load("legacy")
	require.NoError(t, err)
	assert.Nil(t, snap, "stale document versions are never migrated")
}

func TestFileStore_CorruptDocumentErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{nope"), 0644))

	_, err := store.Load("bad")
	assert.Error(t, err)
}

func TestFileStore_ItemsAreIndependent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	a := storeFixture()
	b := storeFixture()
	b.KerfMM = 4.4

	require.NoError(t, store.Save("a", a))
	require.NoError(t, store.Save("b", b))

	gotA, err := store.Load("a")
	require.NoError(t, err)
	gotB, err := store.Load("b")
	require.NoError(t, err)

	assert.Equal(t, 3.0, gotA.KerfMM)
	assert.Equal(t, 4.4, gotB.KerfMM)
}
