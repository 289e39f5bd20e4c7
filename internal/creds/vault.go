package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type vaultFile struct {
	Salt []byte `json:"salt"`
	Data []byte `json:"data"`
}

// Vault is a Provider persisted to a single encrypted file.
type Vault struct {
	mu     sync.RWMutex
	path   string
	sealer *sealer
	creds  set
}

// OpenVault opens the vault at path with password, creating an empty one
// if the file does not exist yet.
func OpenVault(path string, password []byte) (*Vault, error) {
	v := &Vault{path: path, creds: make(set)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if v.sealer, err = newSealer(password, nil); err != nil {
			return nil, err
		}
		return v, v.flush()
	}
	if err != nil {
		return nil, err
	}

	var vf vaultFile
	if err := json.Unmarshal(raw, &vf); err != nil {
		return nil, fmt.Errorf("corrupt credential vault: %w", err)
	}
	if v.sealer, err = newSealer(password, vf.Salt); err != nil {
		return nil, err
	}
	plaintext, err := v.sealer.open(vf.Data)
	if err != nil {
		return nil, ErrDecrypt
	}
	if err := json.Unmarshal(plaintext, &v.creds); err != nil {
		return nil, fmt.Errorf("corrupt credential data: %w", err)
	}
	return v, nil
}

// flush writes the vault through a temp file so a crash never leaves a
// half-written store behind.
func (v *Vault) flush() error {
	plaintext, err := json.Marshal(v.creds)
	if err != nil {
		return err
	}
	sealed, err := v.sealer.seal(plaintext)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(vaultFile{Salt: v.sealer.salt, Data: sealed})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(v.path), ".vault-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), v.path)
}

func (v *Vault) List() ([]Summary, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.creds.summaries(), nil
}

func (v *Vault) Get(name string) (*Credential, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	c, ok := v.creds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &c, nil
}

func (v *Vault) Add(c Credential) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.creds.add(c); err != nil {
		return err
	}
	return v.flush()
}

func (v *Vault) Update(name string, c Credential) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.creds.update(name, c); err != nil {
		return err
	}
	return v.flush()
}

func (v *Vault) Remove(name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.creds.remove(name); err != nil {
		return err
	}
	return v.flush()
}
