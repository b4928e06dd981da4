package input_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/sigscan/internal/input"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func names(inputs []input.Input) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = in.Name()
	}
	return out
}

func TestFromBytes(t *testing.T) {
	in := input.FromBytes("mem", []byte("PK"))
	require.Equal(t, "mem", in.Name())

	buf, err := in.Open()
	require.NoError(t, err)
	require.Equal(t, []byte("PK"), buf.Bytes())
	require.NoError(t, buf.Close())
}

func TestFileOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.gif"), "GIF89a")
	writeFile(t, filepath.Join(dir, "empty"), "")

	f := &input.File{Path: filepath.Join(dir, "a.gif")}
	require.Equal(t, "a.gif", f.Name())

	buf, err := f.Open()
	require.NoError(t, err)
	require.Equal(t, []byte("GIF89a"), buf.Bytes())
	require.NoError(t, buf.Close())

	buf, err = (&input.File{Path: filepath.Join(dir, "empty")}).Open()
	require.NoError(t, err)
	require.Empty(t, buf.Bytes())
	require.NoError(t, buf.Close())

	_, err = (&input.File{Path: filepath.Join(dir, "a.gif"), MaxSize: 3}).Open()
	require.ErrorIs(t, err, input.ErrTooLarge)

	_, err = (&input.File{Path: filepath.Join(dir, "missing")}).Open()
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = (&input.File{Path: dir}).Open()
	require.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.zip"), "PK")
	writeFile(t, filepath.Join(dir, "a.gif"), "GIF8")
	writeFile(t, filepath.Join(dir, ".hidden"), "x")
	writeFile(t, filepath.Join(dir, "sub", "c.pdf"), "%PDF")
	writeFile(t, filepath.Join(dir, ".git", "d"), "x")

	inputs, err := input.List(context.Background(), dir, input.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{".hidden", "a.gif", "b.zip"}, names(inputs))

	inputs, err = input.List(context.Background(), dir, input.ListOptions{Recursive: true})
	require.NoError(t, err)
	require.Equal(t, []string{".git/d", ".hidden", "a.gif", "b.zip", "sub/c.pdf"}, names(inputs))

	inputs, err = input.List(context.Background(), dir, input.ListOptions{Recursive: true, SkipHidden: true})
	require.NoError(t, err)
	require.Equal(t, []string{"a.gif", "b.zip", "sub/c.pdf"}, names(inputs))

	_, err = input.List(context.Background(), filepath.Join(dir, "missing"), input.ListOptions{})
	require.Error(t, err)
}

func TestListFollowsFileSymlinks(t *testing.T) {
	target := filepath.Join(t.TempDir(), "archive.zip")
	writeFile(t, target, "PK\x03\x04")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.gif"), "GIF8")
	writeFile(t, filepath.Join(dir, ".bashrc"), "x")
	writeFile(t, filepath.Join(dir, "sub", "c.pdf"), "%PDF")

	if err := os.Symlink(target, filepath.Join(dir, "link.zip")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "subdir")))

	inputs, err := input.List(context.Background(), dir, input.ListOptions{Recursive: true})
	require.NoError(t, err)
	require.Equal(t, []string{".bashrc", "a.gif", "link.zip", "sub/c.pdf"}, names(inputs))

	buf, err := inputs[2].Open()
	require.NoError(t, err)
	require.Equal(t, []byte("PK\x03\x04"), buf.Bytes())
	require.NoError(t, buf.Close())
}

func TestListCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := input.List(ctx, dir, input.ListOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
