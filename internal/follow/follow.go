// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package follow delivers lines appended to a file.
package follow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Tail reads complete lines appended to a file after a given offset.
// A trailing line without a newline is held back until it is completed.
type Tail struct {
	path    string
	f       *os.File
	partial []byte
}

// Open opens path for tailing, starting at offset.
func Open(path string, offset int64) (*Tail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek %q: %w", path, err)
	}
	return &Tail{path: path, f: f}, nil
}

// Next returns the non-empty complete lines written since the last call.
func (t *Tail) Next() ([]string, error) {
	data, err := io.ReadAll(t.f)
	if err != nil {
		return nil, err
	}
	data = append(t.partial, data...)
	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		t.partial = data
		return nil, nil
	}
	t.partial = append([]byte(nil), data[end+1:]...)
	var lines []string
	for _, line := range strings.Split(string(data[:end]), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Close closes the file.
func (t *Tail) Close() error {
	return t.f.Close()
}

// Lines watches path and calls fn with each batch of complete lines
// appended after offset. Blocks until ctx is cancelled.
func Lines(ctx context.Context, path string, offset int64, fn func([]string)) error {
	t, err := Open(path, offset)
	if err != nil {
		return err
	}
	defer t.Close()
	return Watch(ctx, t, fn)
}

// Watch continues t from its current position, calling fn with each batch
// of complete lines, including a held-back partial line once it is
// completed. Blocks until ctx is cancelled. The caller closes t.
func Watch(ctx context.Context, t *Tail, fn func([]string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(t.path); err != nil {
		return fmt.Errorf("failed to watch %q: %w", t.path, err)
	}

	// Catch up on anything written before Add.
	if err := deliver(t, fn); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) {
				if err := deliver(t, fn); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher error: %w", err)
		}
	}
}

func deliver(t *Tail, fn func([]string)) error {
	lines, err := t.Next()
	if err != nil {
		return fmt.Errorf("failed to read appended lines: %w", err)
	}
	if len(lines) > 0 {
		fn(lines)
	}
	return nil
}
