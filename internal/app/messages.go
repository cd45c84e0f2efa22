package app

import "github.com/fsnotify/fsnotify"

// FileChangeMsg is sent when a watched file changes on disk.
type FileChangeMsg struct {
	Path string
	Op   fsnotify.Op
}

// fileChangeDebounceMsg is sent after the debounce interval to reload the
// panes whose files changed.
type fileChangeDebounceMsg struct{}

// ErrorMsg reports a fatal error. The program quits and Err returns it.
type ErrorMsg struct {
	Err error
}
