// Package creds stores the SNMP credential profiles that dashboard targets
// refer to by name.
package creds

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrNotFound  = errors.New("credential not found")
	ErrDuplicate = errors.New("credential already exists")
	ErrDecrypt   = errors.New("failed to decrypt credential vault (wrong password?)")
)

// Credential is an SNMP v1/v2c community or v3 USM profile.
type Credential struct {
	Name      string `json:"name"`
	Version   string `json:"version"`   // "1", "2c", "3"
	Community string `json:"community"` // v1/v2c
	Username  string `json:"username"`  // v3
	AuthProto string `json:"auth_proto"`
	AuthPass  string `json:"auth_pass"`
	PrivProto string `json:"priv_proto"`
	PrivPass  string `json:"priv_pass"`
}

// Summary is a Credential without its secrets.
type Summary struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Username  string `json:"username,omitempty"`
	AuthProto string `json:"auth_proto,omitempty"`
	PrivProto string `json:"priv_proto,omitempty"`
}

func (c Credential) Summary() Summary {
	return Summary{
		Name:      c.Name,
		Version:   c.Version,
		Username:  c.Username,
		AuthProto: c.AuthProto,
		PrivProto: c.PrivProto,
	}
}

// Validate checks that the profile carries what its SNMP version needs.
func (c Credential) Validate() error {
	if c.Name == "" {
		return errors.New("credential name is required")
	}
	switch c.Version {
	case "1", "2c":
		if c.Community == "" {
			return fmt.Errorf("credential %q: community is required for v%s", c.Name, c.Version)
		}
	case "3":
		if c.Username == "" {
			return fmt.Errorf("credential %q: username is required for v3", c.Name)
		}
		if c.PrivProto != "" && c.AuthProto == "" {
			return fmt.Errorf("credential %q: privacy requires authentication", c.Name)
		}
	default:
		return fmt.Errorf("credential %q: unsupported SNMP version %q", c.Name, c.Version)
	}
	return nil
}

// Provider looks up and manages credentials.
type Provider interface {
	List() ([]Summary, error)
	Get(name string) (*Credential, error)
	Add(c Credential) error
	Update(name string, c Credential) error
	Remove(name string) error
}

// set is the name-keyed collection shared by the providers.
type set map[string]Credential

func (s set) summaries() []Summary {
	out := make([]Summary, 0, len(s))
	for _, c := range s {
		out = append(out, c.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s set) add(c Credential) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := s[c.Name]; ok {
		return ErrDuplicate
	}
	s[c.Name] = c
	return nil
}

func (s set) update(name string, c Credential) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := s[name]; !ok {
		return ErrNotFound
	}
	if name != c.Name {
		if _, taken := s[c.Name]; taken {
			return ErrDuplicate
		}
		delete(s, name)
	}
	s[c.Name] = c
	return nil
}

func (s set) remove(name string) error {
	if _, ok := s[name]; !ok {
		return ErrNotFound
	}
	delete(s, name)
	return nil
}

// Static is an in-memory Provider. The zero value is not usable; use
// NewStatic.
type Static struct {
	mu    sync.RWMutex
	creds set
}

// NewStatic returns a Provider holding the given credentials.
func NewStatic(list ...Credential) (*Static, error) {
	s := &Static{creds: make(set)}
	for _, c := range list {
		if err := s.creds.add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Static) List() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.summaries(), nil
}

func (s *Static) Get(name string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.creds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &c, nil
}

func (s *Static) Add(c Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.add(c)
}

func (s *Static) Update(name string, c Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.update(name, c)
}

func (s *Static) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.remove(name)
}
