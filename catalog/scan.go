package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/ocif"
)

// Extension is the file extension of OCIF images
const Extension = ".pic"

const scanWorkers = 10

type scanned struct {
	name  string
	image *ocif.Image
}

func (c *Catalog) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(file), Extension) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func name(base, file string) string {
	rel, err := filepath.Rel(base, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

func (c *Catalog) decodeWorker(ctx context.Context, base string, in <-chan string, out chan<- scanned, wg *sync.WaitGroup) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for file := range in {
			f, err := os.Open(file)
			if err != nil {
				errc <- err
				return
			}
			m, err := ocif.Decode(f)
			f.Close()
			if err != nil {
				// Not fatal, carry on with the rest
				c.logger.Printf("Skipping \"%s\": %s\n", file, err)
				continue
			}

			select {
			case out <- scanned{name: name(base, file), image: m}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

func unencodable(err error) bool {
	return errors.Is(err, ocif.ErrTooLarge) || errors.Is(err, ocif.ErrEmpty) || errors.Is(err, ocif.ErrCellCount)
}

// Writes happen on one goroutine as sqlite serializes them anyway
func (c *Catalog) storeWorker(ctx context.Context, in <-chan scanned) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for s := range in {
			err := c.Add(s.name, s.image)
			if unencodable(err) {
				// Not fatal, carry on with the rest
				c.logger.Printf("Skipping \"%s\": %s\n", s.name, err)
				continue
			}
			if err != nil {
				errc <- err
				// Drain so the decoders don't block
				for range in {
				}
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and adds every OCIF image found. Each image is named
// after its path relative to path without the extension. Hidden files and
// directories are ignored, as are files that fail to decode.
func (c *Catalog) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	images := make(chan scanned)
	var wg sync.WaitGroup
	for i := 0; i < scanWorkers; i++ {
		wg.Add(1)
		errc, err := c.decodeWorker(ctx, dir, files, images, &wg)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}
	go func() {
		wg.Wait()
		close(images)
	}()

	errc, err = c.storeWorker(ctx, images)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	return waitForPipeline(errcList...)
}
