package fswalk

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFindBibFile_FindsFirstBib(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "refs.bib"))

	path, err := FindBibFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "refs.bib"), path)
}

func TestFindBibFile_NoBibIsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"))

	_, err := FindBibFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bib file")
}

func TestFindBibFile_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "folder.bib"), 0755))

	_, err := FindBibFile(dir)
	require.Error(t, err)
}

func TestCollect_RecursiveExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ch1.tex"))
	writeFile(t, filepath.Join(dir, "sub", "ch2.tex"))
	writeFile(t, filepath.Join(dir, "sub", "deep", "ch3.tex"))
	writeFile(t, filepath.Join(dir, "sub", "notes.md"))

	files, err := Collect(nil, []string{dir}, []string{"tex"})
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{
		filepath.Join(dir, "ch1.tex"),
		filepath.Join(dir, "sub", "ch2.tex"),
		filepath.Join(dir, "sub", "deep", "ch3.tex"),
	}, files)
}

func TestCollect_ExplicitFilesKeptAsGiven(t *testing.T) {
	// Explicit files are not extension-filtered; the user asked for them.
	files, err := Collect([]string{"a.md", "b.tex"}, nil, []string{"tex"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.tex"}, files)
}

func TestCollect_FilesPlusDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ch1.tex"))

	files, err := Collect([]string{"extra.tex"}, []string{dir}, []string{"tex"})
	require.NoError(t, err)
	assert.Contains(t, files, "extra.tex")
	assert.Contains(t, files, filepath.Join(dir, "ch1.tex"))
}

func TestCollect_MultipleExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tex"))
	writeFile(t, filepath.Join(dir, "b.latex"))
	writeFile(t, filepath.Join(dir, "c.txt"))

	files, err := Collect(nil, []string{dir}, []string{"tex", ".latex"})
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.tex"),
		filepath.Join(dir, "b.latex"),
	}, files)
}

func TestCollect_EmptyInputs(t *testing.T) {
	files, err := Collect(nil, nil, []string{"tex"})
	require.NoError(t, err)
	assert.Empty(t, files)
}
