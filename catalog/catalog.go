/*
Package catalog implements a sqlite database of named OCIF images.

Images are stored in the most compact encoding method and compressed with
zstd. Identical images stored under different names share one blob.
*/
package catalog

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/bodgit/ocif"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3" // database driver
)

// Entry describes a stored image.
type Entry struct {
	Name   string
	Width  int
	Height int
	SHA1   string
}

// Catalog is an open image database.
type Catalog struct {
	db     *sql.DB
	logger *log.Logger

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens or creates the database in file.
func Open(file string, logger *log.Logger) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS blob (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, blob_id INTEGER NOT NULL, FOREIGN KEY(blob_id) REFERENCES blob(id))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Catalog{
		db:     db,
		logger: logger,
		enc:    enc,
		dec:    dec,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}

func (c *Catalog) addBlob(b []byte, m *ocif.Image) (int64, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM blob WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO blob (sha1, width, height, data) VALUES (?, ?, ?, ?)", sha, m.Width, m.Height, c.enc.EncodeAll(b, nil))
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func (c *Catalog) pruneBlobs() error {
	_, err := c.db.Exec("DELETE FROM blob WHERE id NOT IN (SELECT blob_id FROM image)")
	return err
}

// encode uses the most compact method, falling back to MethodFlat for
// images the grouped methods cannot hold.
func encode(m *ocif.Image) ([]byte, error) {
	b, err := ocif.Marshal(m, nil)
	if errors.Is(err, ocif.ErrTooLarge) || errors.Is(err, ocif.ErrEmpty) {
		return ocif.Marshal(m, &ocif.EncodeOptions{Method: ocif.MethodFlat})
	}
	return b, err
}

// Add stores m under name, replacing any existing image with that name.
func (c *Catalog) Add(name string, m *ocif.Image) error {
	b, err := encode(m)
	if err != nil {
		return err
	}

	id, err := c.addBlob(b, m)
	if err != nil {
		return err
	}

	if _, err := c.db.Exec("INSERT INTO image (name, blob_id) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET blob_id = excluded.blob_id", name, id); err != nil {
		return err
	}

	c.logger.Printf("Stored \"%s\" (%dx%d)\n", name, m.Width, m.Height)

	return c.pruneBlobs()
}

// Get returns the image stored under name, or nil if there isn't one.
func (c *Catalog) Get(name string) (*ocif.Image, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT b.data FROM image AS i JOIN blob AS b ON i.blob_id = b.id WHERE i.name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		b, err := c.dec.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
		return ocif.Unmarshal(b)
	default:
		return nil, err
	}
}

// Delete removes the image stored under name. It is not an error if there
// isn't one.
func (c *Catalog) Delete(name string) error {
	if _, err := c.db.Exec("DELETE FROM image WHERE name = ?", name); err != nil {
		return err
	}
	return c.pruneBlobs()
}

// List returns every stored image ordered by name.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query("SELECT i.name, b.width, b.height, b.sha1 FROM image AS i JOIN blob AS b ON i.blob_id = b.id ORDER BY i.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Width, &e.Height, &e.SHA1); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
