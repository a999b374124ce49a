package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	books, err := Default()
	require.NoError(t, err)
	require.Len(t, books, 6)
	assert.Equal(t, "978-0-14-303490-2", books[0].ISBN)
	assert.Equal(t, "The Shadow of the Wind", books[0].Title)
	assert.Equal(t, 2001, books[0].Year)
	assert.Equal(t, "978-1-4088-6312-1", books[5].ISBN)
}

func TestParseRejectsDuplicates(t *testing.T) {
	doc := []byte(`books:
  - isbn: "1"
    title: A
  - isbn: "1"
    title: B
`)
	_, err := Parse(doc)
	assert.ErrorContains(t, err, "duplicate isbn")
}

func TestParseRejectsMissingISBN(t *testing.T) {
	_, err := Parse([]byte("books:\n  - title: A\n"))
	assert.ErrorContains(t, err, "missing isbn")
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse([]byte("books: []\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`books:
  - isbn: "x-1"
    title: Only
    author: Someone
    year: 1999
    genre: Test
`), 0o644))
	books, err := Load(path)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Someone", books[0].Author)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	books, err := Load("  ")
	require.NoError(t, err)
	assert.Len(t, books, 6)
}
