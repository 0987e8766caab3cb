package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// debounce absorbs the burst of events editors produce for one save.
const debounce = 50 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands the
// result to a callback. Invalid files are reported through the same
// callback with a nil config.
type Watcher struct {
	watcher  *fsnotify.Watcher
	v        *viper.Viper
	file     string
	onChange func(*Config, error)
	stopCh   chan struct{}
	once     sync.Once
	done     chan struct{}
}

// NewWatcher watches the file v was read from.
func NewWatcher(v *viper.Viper, onChange func(*Config, error)) (*Watcher, error) {
	file := v.ConfigFileUsed()
	if file == "" {
		return nil, fmt.Errorf("watch config: no config file in use")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}
	return &Watcher{
		watcher:  watcher,
		v:        v,
		file:     filepath.Clean(file),
		onChange: onChange,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching in a new goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends the watch and waits for the loop to exit. It must only be
// called after Start.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)
	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case <-w.stopCh:
			timer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			w.reload()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload() {
	if err := w.v.ReadInConfig(); err != nil {
		w.onChange(nil, fmt.Errorf("reload config: %w", err))
		return
	}
	cfg, err := Load(w.v)
	w.onChange(cfg, err)
}
