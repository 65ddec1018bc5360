package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Gateway is the persistence boundary. The canvas treats it as
// fire-and-forget: calls run off the UI loop, failures surface as a
// transient status message and are never retried, and the last write
// for an id wins server-side.
type Gateway interface {
	ListEntities(ctx context.Context, userID string) ([]*Entity, error)
	UpdateEntityPosition(ctx context.Context, kind EntityKind, id string, pos Point) (*Entity, error)
	UpdateEntityConnections(ctx context.Context, kind EntityKind, id string, connectedTo []string) (*Entity, error)
}

// fileGateway keeps the whole map in one JSON file, the standalone
// way of running notemap without a server.
type fileGateway struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

type mapFile struct {
	Entities []*Entity `json:"entities"`
}

func newFileGateway(path string, log zerolog.Logger) *fileGateway {
	return &fileGateway{path: path, log: log}
}

func (g *fileGateway) load() (*mapFile, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &mapFile{}, nil
		}
		return nil, err
	}
	var f mapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", g.path, err)
	}
	return &f, nil
}

func (g *fileGateway) save(f *mapFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, g.path)
}

func (g *fileGateway) ListEntities(ctx context.Context, userID string) ([]*Entity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, err := g.load()
	if err != nil {
		return nil, err
	}
	return f.Entities, nil
}

// update applies fn to the matching record under a full
// read-modify-write of the file, so concurrent writers at least never
// corrupt it. Conflicting edits remain last-write-wins.
func (g *fileGateway) update(kind EntityKind, id string, fn func(*Entity)) (*Entity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, err := g.load()
	if err != nil {
		return nil, err
	}
	for i, e := range f.Entities {
		if e.Kind != kind || e.ID != id {
			continue
		}
		next := *e
		fn(&next)
		f.Entities[i] = &next
		if err := g.save(f); err != nil {
			return nil, err
		}
		return &next, nil
	}
	return nil, fmt.Errorf("no %s with id %s", kind, id)
}

func (g *fileGateway) UpdateEntityPosition(ctx context.Context, kind EntityKind, id string, pos Point) (*Entity, error) {
	g.log.Debug().Str("kind", string(kind)).Str("id", id).
		Float64("x", pos.X).Float64("y", pos.Y).Msg("save position")
	return g.update(kind, id, func(e *Entity) {
		p := pos
		e.Position = &p
	})
}

func (g *fileGateway) UpdateEntityConnections(ctx context.Context, kind EntityKind, id string, connectedTo []string) (*Entity, error) {
	g.log.Debug().Str("kind", string(kind)).Str("id", id).
		Strs("connectedTo", connectedTo).Msg("save connections")
	return g.update(kind, id, func(e *Entity) {
		e.ConnectedTo = append([]string(nil), connectedTo...)
	})
}

// httpGateway talks to the note service's REST API.
type httpGateway struct {
	base   *url.URL
	client *http.Client
	log    zerolog.Logger
}

func newHTTPGateway(baseURL string, log zerolog.Logger) (*httpGateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	return &httpGateway{
		base:   u,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}, nil
}

func kindPath(kind EntityKind) string {
	if kind == KindFolder {
		return "folders"
	}
	return "notes"
}

func (g *httpGateway) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	u := *g.base
	u.Path = path
	req, err := http.NewRequestWithContext(ctx, method, u.String(), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *httpGateway) ListEntities(ctx context.Context, userID string) ([]*Entity, error) {
	u := *g.base
	u.Path = "/api/entities"
	q := u.Query()
	q.Set("user", userID)
	u.RawQuery = q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list entities: status %d", resp.StatusCode)
	}
	var out struct {
		Entities []*Entity `json:"entities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Entities, nil
}

func (g *httpGateway) UpdateEntityPosition(ctx context.Context, kind EntityKind, id string, pos Point) (*Entity, error) {
	g.log.Debug().Str("kind", string(kind)).Str("id", id).Msg("save position")
	var e Entity
	path := fmt.Sprintf("/api/%s/%s/position", kindPath(kind), id)
	if err := g.do(ctx, http.MethodPatch, path, pos, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *httpGateway) UpdateEntityConnections(ctx context.Context, kind EntityKind, id string, connectedTo []string) (*Entity, error) {
	g.log.Debug().Str("kind", string(kind)).Str("id", id).Msg("save connections")
	var e Entity
	path := fmt.Sprintf("/api/%s/%s/connections", kindPath(kind), id)
	body := struct {
		ConnectedTo []string `json:"connectedTo"`
	}{ConnectedTo: connectedTo}
	if err := g.do(ctx, http.MethodPatch, path, body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// defaultDataPath resolves the standalone map file, honoring the
// configured save directory.
func defaultDataPath(cfg *Config) string {
	if cfg.SaveDirectory != "" {
		return filepath.Join(cfg.SaveDirectory, "notemap.json")
	}
	return "notemap.json"
}
