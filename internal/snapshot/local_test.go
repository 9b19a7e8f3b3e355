package snapshot

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promowatch/promowatch/internal/monitor"
)

func TestLocalStoreSaveSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	page := monitor.Page{
		URL:  "https://a.example",
		Body: []byte("<html><body>sale</body></html>"),
	}
	uri, err := store.SaveSnapshot(context.Background(), "run-1", page)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "file://"))

	urlHash := fmt.Sprintf("%x", sha256.Sum256([]byte(page.URL)))
	want := filepath.Join(dir, "snapshots", "run-1", urlHash+".html")
	assert.Equal(t, "file://"+want, uri)

	body, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, page.Body, body)
}

func TestLocalStoreStablePathPerURL(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	page := monitor.Page{URL: "https://a.example", Body: []byte("one")}
	first, err := store.SaveSnapshot(context.Background(), "run-1", page)
	require.NoError(t, err)

	page.Body = []byte("two")
	second, err := store.SaveSnapshot(context.Background(), "run-1", page)
	require.NoError(t, err)

	// Same run and URL overwrite the same object.
	assert.Equal(t, first, second)
}

func TestLocalStoreRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveSnapshot(context.Background(), "run-1", monitor.Page{URL: "https://a.example"})
	assert.Error(t, err)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	page := monitor.Page{URL: "https://a.example", Body: []byte("x")}
	_, err = store.SaveSnapshot(context.Background(), "../../escape", page)
	assert.Error(t, err)
}

func TestLocalStoreCanceledContext(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.SaveSnapshot(ctx, "run-1", monitor.Page{URL: "https://a.example", Body: []byte("x")})
	assert.Error(t, err)
}

func TestNewLocalStoreRequiresDir(t *testing.T) {
	t.Parallel()

	_, err := NewLocalStore("  ")
	assert.Error(t, err)
}

func TestNoOpSnapshotter(t *testing.T) {
	t.Parallel()

	uri, err := NoOp{}.SaveSnapshot(context.Background(), "run-1", monitor.Page{})
	require.NoError(t, err)
	assert.Empty(t, uri)
}
