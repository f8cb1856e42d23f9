// Package tail follows a growing log file, streaming appended bytes as
// the run that owns the file writes them.
package tail

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Follow copies the file's current content to w, then streams appended
// bytes until ctx is cancelled or the file is removed or renamed.
// Truncation in place (a same-second rerun re-opening the path with
// os.Create, same inode) restarts the stream from the top of the new
// content; a remove-then-recreate or rename-over replacement ends the
// follow like any other removal.
func Follow(ctx context.Context, path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and reruns replace
	// files, and directory watches survive that.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evAbs, err := filepath.Abs(event.Name)
			if err != nil || evAbs != abs {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				return nil

			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				if err := copyNew(f, w); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// copyNew streams bytes appended since the last read, rewinding first if
// the file shrank underneath us.
func copyNew(f *os.File, w io.Writer) error {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < pos {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}

	_, err = io.Copy(w, f)
	return err
}
