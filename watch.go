package main

import (
	"net/url"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// waitForUpdate delivers the next external update as a bubbletea
// message. The model re-issues it after each receipt.
func waitForUpdate(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// watchFile signals whenever the standalone map file is modified by
// another process, so edits from a second notemap (or a sync tool)
// show up without restarting.
func watchFile(path string, log zerolog.Logger) (chan tea.Msg, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	ch := make(chan tea.Msg, 8)
	go func() {
		defer close(ch)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case ch <- entitiesChangedMsg{}:
				default:
					// A reload is already queued.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("file watch error")
			}
		}
	}()
	return ch, func() { watcher.Close() }, nil
}

// watchServer subscribes to the note service's entity stream. Each
// frame is one updated entity from another device; merging is
// last-write-wins on the model side.
func watchServer(baseURL string, log zerolog.Logger) (chan tea.Msg, func(), error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/api/entities/watch"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan tea.Msg, 8)
	go func() {
		defer close(ch)
		for {
			var e Entity
			if err := conn.ReadJSON(&e); err != nil {
				log.Warn().Err(err).Msg("entity stream closed")
				return
			}
			ch <- remoteEntityMsg{entity: &e}
		}
	}()
	return ch, func() { conn.Close() }, nil
}
