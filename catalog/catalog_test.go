package catalog

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ocif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "ocif.db"), log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, c.Close())
	})
	return c
}

func sample(c rune) *ocif.Image {
	m := ocif.New(2, 1)
	m.Set(0, 0, ocif.Cell{Background: 0xff0000, Foreground: 0x00ff00, Alpha: 1, Character: c})
	m.Set(1, 0, ocif.Cell{Background: 0x0000ff, Foreground: 0xffff00, Alpha: 0, Character: 'b'})
	return m
}

func TestAddGet(t *testing.T) {
	c := open(t)

	require.NoError(t, c.Add("one", sample('a')))

	m, err := c.Get("one")
	require.NoError(t, err)
	assert.Equal(t, sample('a'), m)

	m, err = c.Get("missing")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestAddReplaces(t *testing.T) {
	c := open(t)

	require.NoError(t, c.Add("one", sample('a')))
	require.NoError(t, c.Add("one", sample('z')))

	m, err := c.Get("one")
	require.NoError(t, err)
	assert.Equal(t, sample('z'), m)

	entries, err := c.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	var blobs int
	require.NoError(t, c.db.QueryRow("SELECT COUNT(*) FROM blob").Scan(&blobs))
	assert.Equal(t, 1, blobs)
}

func TestDedup(t *testing.T) {
	c := open(t)

	require.NoError(t, c.Add("one", sample('a')))
	require.NoError(t, c.Add("two", sample('a')))
	require.NoError(t, c.Add("three", sample('c')))

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"one", "three", "two"}, []string{entries[0].Name, entries[1].Name, entries[2].Name})
	assert.Equal(t, entries[0].SHA1, entries[2].SHA1)
	assert.NotEqual(t, entries[0].SHA1, entries[1].SHA1)
	assert.Equal(t, 2, entries[0].Width)
	assert.Equal(t, 1, entries[0].Height)

	var blobs int
	require.NoError(t, c.db.QueryRow("SELECT COUNT(*) FROM blob").Scan(&blobs))
	assert.Equal(t, 2, blobs)
}

func TestDelete(t *testing.T) {
	c := open(t)

	require.NoError(t, c.Add("one", sample('a')))
	require.NoError(t, c.Delete("one"))
	require.NoError(t, c.Delete("one"))

	m, err := c.Get("one")
	assert.NoError(t, err)
	assert.Nil(t, m)

	entries, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddFlat(t *testing.T) {
	c := open(t)

	for name, m := range map[string]*ocif.Image{
		"empty": ocif.New(0, 0),
		"wide":  ocif.New(300, 1),
		"tall":  ocif.New(1, 257),
	} {
		require.NoError(t, c.Add(name, m), name)

		got, err := c.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, m, got, name)
	}
}

func TestAddInvalid(t *testing.T) {
	c := open(t)

	assert.Equal(t, ocif.ErrTooLarge, c.Add("huge", ocif.New(0x10000, 1)))
	assert.Equal(t, ocif.ErrCellCount, c.Add("short", &ocif.Image{Width: 2, Height: 2}))
	assert.True(t, unencodable(ocif.ErrCellCount))
	assert.False(t, unencodable(nil))
}

func writeFile(t *testing.T, file string, b []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, ioutil.WriteFile(file, b, 0644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for i, file := range []string{"a.pic", "sub/b.PIC", "sub/deeper/c.pic"} {
		b, err := ocif.Marshal(sample(rune('a'+i)), &ocif.EncodeOptions{Method: ocif.MethodFlat + i})
		require.NoError(t, err)
		writeFile(t, filepath.Join(dir, filepath.FromSlash(file)), b)
	}
	wide, err := ocif.Marshal(ocif.New(300, 1), &ocif.EncodeOptions{Method: ocif.MethodFlat})
	require.NoError(t, err)
	writeFile(t, filepath.Join(dir, "wide.pic"), wide)
	writeFile(t, filepath.Join(dir, ".hidden", "d.pic"), []byte("OCIF"))
	writeFile(t, filepath.Join(dir, ".e.pic"), []byte("OCIF"))
	writeFile(t, filepath.Join(dir, "broken.pic"), []byte("not an image"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("hello"))

	c := open(t)
	require.NoError(t, c.Scan(dir))

	entries, err := c.List()
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a", "sub/b", "sub/deeper/c", "wide"}, names)

	m, err := c.Get("sub/deeper/c")
	require.NoError(t, err)
	assert.Equal(t, sample('c'), m)

	m, err = c.Get("wide")
	require.NoError(t, err)
	assert.Equal(t, ocif.New(300, 1), m)
}

func TestScanMissing(t *testing.T) {
	c := open(t)
	assert.Error(t, c.Scan(filepath.Join(t.TempDir(), "missing")))
}
