// Package infofeed turns a YAML file into dashboard events.
//
// The file is watched for changes and every successful reload is sent as a
// SetTitle, SetInformation and SetInterruptMode event.
package infofeed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/flashingpumpkin/progressdash/internal/log"
	"github.com/flashingpumpkin/progressdash/internal/tui"
)

// DefaultDebounce is how long the feed waits for writes to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// File is the content of an information file.
//
//	title: Release 1.2
//	interrupt: deferred
//	information:
//	  - title: Build
//	  - text: branch main
type File struct {
	Title       string  `yaml:"title,omitempty"`
	Interrupt   string  `yaml:"interrupt,omitempty"`
	Information []Entry `yaml:"information,omitempty"`
}

// Entry is one line of the information pane. Exactly one field is set.
type Entry struct {
	Title string `yaml:"title,omitempty"`
	Text  string `yaml:"text,omitempty"`
}

// Parse decodes an information file into the events that apply it.
func Parse(data []byte) ([]tui.Event, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse information file: %w", err)
	}
	return f.Events()
}

// Events returns the events that apply f to a dashboard.
func (f File) Events() ([]tui.Event, error) {
	var events []tui.Event
	if f.Title != "" {
		events = append(events, tui.SetTitle{Title: f.Title})
	}

	lines := make([]tui.Line, 0, len(f.Information))
	for i, e := range f.Information {
		switch {
		case e.Title != "" && e.Text != "":
			return nil, fmt.Errorf("information entry %d has both title and text", i)
		case e.Title != "":
			lines = append(lines, tui.Title(e.Title))
		default:
			lines = append(lines, tui.Text(e.Text))
		}
	}
	events = append(events, tui.SetInformation{Lines: lines})

	switch f.Interrupt {
	case "":
	case tui.InterruptInstantly.String():
		events = append(events, tui.SetInterruptMode{Mode: tui.InterruptInstantly})
	case tui.InterruptDeferred.String():
		events = append(events, tui.SetInterruptMode{Mode: tui.InterruptDeferred})
	default:
		return nil, fmt.Errorf("unknown interrupt mode %q", f.Interrupt)
	}
	return events, nil
}

// Load reads and parses the information file at path.
func Load(path string) ([]tui.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read information file: %w", err)
	}
	return Parse(data)
}

// Option configures a Feed.
type Option func(*Feed)

// WithDebounce sets how long writes have to settle before the file is reloaded.
func WithDebounce(d time.Duration) Option {
	return func(f *Feed) {
		f.debounce = d
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// Feed watches an information file.
type Feed struct {
	path     string
	debounce time.Duration
	logger   log.Logger
}

// New returns a feed for the file at path.
func New(path string, opts ...Option) *Feed {
	f := &Feed{
		path:     path,
		debounce: DefaultDebounce,
		logger:   log.Noop,
	}
	for _, o := range opts {
		o(f)
	}
	f.logger = f.logger.WithValues(log.Kv{"info-file": path})
	return f
}

// Run sends the current content of the file to out, then a new set of events
// on every change, until ctx is done. A missing file is not an error; it is
// picked up once created. Files that fail to parse are logged and skipped.
func (f *Feed) Run(ctx context.Context, out chan<- tui.Event) error {
	path, err := filepath.Abs(f.path)
	if err != nil {
		return fmt.Errorf("resolve information file: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory so files replaced by rename are still seen.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	f.reload(ctx, path, out)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != filepath.Base(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				settle = time.After(f.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.logger.Warningf("Watcher error: %s", err)

		case <-settle:
			settle = nil
			f.reload(ctx, path, out)
		}
	}
}

func (f *Feed) reload(ctx context.Context, path string, out chan<- tui.Event) {
	events, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		f.logger.Debugf("Information file does not exist yet")
		return
	}
	if err != nil {
		f.logger.Warningf("Skipping information file: %s", err)
		return
	}

	f.logger.Debugf("Loaded %d events", len(events))
	for _, ev := range events {
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}
