package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"gitlabtree/internal/domain"
	"gitlabtree/internal/ports"
)

// memoryStore is an in-memory SnapshotStore
type memoryStore struct {
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

func (m *memoryStore) Read() ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.data == nil {
		return nil, fmt.Errorf("memory: %w", fs.ErrNotExist)
	}
	return m.data, nil
}

func (m *memoryStore) Write(data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memoryStore) Clear() error {
	m.data = nil
	return nil
}

func (m *memoryStore) Location() string {
	return "memory"
}

// fakeSource serves fixed pages. Keys of the page maps are page numbers.
type fakeSource struct {
	groups      map[int]ports.Page[domain.Group]
	projects    map[int64]map[int]ports.Page[domain.Project]
	owned       map[int]ports.Page[domain.Project]
	user        domain.User
	userErr     error
	ownedErr    error
	projectsErr map[int64]error
	groupsErr   error
	onUser      func(ctx context.Context) error

	calls []string
}

func (f *fakeSource) ListGroups(ctx context.Context, req ports.PageRequest) (ports.Page[domain.Group], error) {
	f.calls = append(f.calls, fmt.Sprintf("groups:%d", req.Page))
	if f.groupsErr != nil {
		return ports.Page[domain.Group]{}, f.groupsErr
	}
	return f.groups[req.Page], nil
}

func (f *fakeSource) ListGroupProjects(ctx context.Context, groupID int64, req ports.PageRequest) (ports.Page[domain.Project], error) {
	f.calls = append(f.calls, fmt.Sprintf("projects:%d:%d", groupID, req.Page))
	if err := f.projectsErr[groupID]; err != nil {
		return ports.Page[domain.Project]{}, err
	}
	return f.projects[groupID][req.Page], nil
}

func (f *fakeSource) ListOwnedProjects(ctx context.Context, req ports.PageRequest) (ports.Page[domain.Project], error) {
	f.calls = append(f.calls, fmt.Sprintf("owned:%d", req.Page))
	if f.ownedErr != nil {
		return ports.Page[domain.Project]{}, f.ownedErr
	}
	return f.owned[req.Page], nil
}

func (f *fakeSource) CurrentUser(ctx context.Context) (domain.User, error) {
	f.calls = append(f.calls, "user")
	if f.onUser != nil {
		if err := f.onUser(ctx); err != nil {
			return domain.User{}, err
		}
	}
	return f.user, f.userErr
}

// recordingClipboard remembers the last text it received
type recordingClipboard struct {
	text string
	err  error
}

func (c *recordingClipboard) SetText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

// recordingBrowser remembers the last URL it opened
type recordingBrowser struct {
	opened string
	err    error
}

func (b *recordingBrowser) Open(url string) error {
	if b.err != nil {
		return b.err
	}
	b.opened = url
	return nil
}

var errBoom = errors.New("boom")
