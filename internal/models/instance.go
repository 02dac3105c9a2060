package models

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Instance is a Jenkins controller known to the workbench. Record URLs are
// decoded against its base URL.
type Instance struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"` // e.g. "https://ci.example.com/jenkins"
	Description string `json:"description,omitempty"`
}

// BaseURL returns the instance URL without a trailing slash.
func (i *Instance) BaseURL() string {
	return strings.TrimRight(i.URL, "/")
}

// Validate checks that the instance has a name and an absolute http(s) URL.
func (i *Instance) Validate() error {
	if i.Name == "" {
		return errors.New("name is required")
	}
	if i.URL == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(i.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", i.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", i.URL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid url %q: query and fragment are not allowed", i.URL)
	}
	return nil
}

// InstanceStore is an in-memory thread-safe store for instances.
type InstanceStore struct {
	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewInstanceStore creates an empty instance store.
func NewInstanceStore() *InstanceStore {
	return &InstanceStore{instances: make(map[string]*Instance)}
}

// Create adds a new instance, assigning it a UUID.
func (s *InstanceStore) Create(i *Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i.ID = uuid.New().String()
	s.instances[i.ID] = i
}

// Get returns an instance by ID, or nil if not found.
func (s *InstanceStore) Get(id string) *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instances[id]
}

// List returns all instances sorted by name.
func (s *InstanceStore) List() []*Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Instance, 0, len(s.instances))
	for _, i := range s.instances {
		result = append(result, i)
	}
	sort.Slice(result, func(a, b int) bool {
		if result[a].Name != result[b].Name {
			return result[a].Name < result[b].Name
		}
		return result[a].ID < result[b].ID
	})
	return result
}

// Update replaces an existing instance's settings.
func (s *InstanceStore) Update(i *Instance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[i.ID]; !ok {
		return false
	}
	s.instances[i.ID] = i
	return true
}

// Delete removes an instance by ID.
func (s *InstanceStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[id]; !ok {
		return false
	}
	delete(s.instances, id)
	return true
}

// Match returns the instance whose base URL is the longest prefix of rawURL,
// or nil. Instances served under a context path ("/jenkins") win over one at
// the root of the same host.
func (s *InstanceStore) Match(rawURL string) *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *Instance
	for _, i := range s.instances {
		base := i.BaseURL()
		if rawURL != base && !strings.HasPrefix(rawURL, base+"/") {
			continue
		}
		switch {
		case best == nil, len(base) > len(best.BaseURL()):
			best = i
		case len(base) == len(best.BaseURL()) && i.ID < best.ID:
			best = i
		}
	}
	return best
}
