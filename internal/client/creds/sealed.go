package creds

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/brocat-app/brocat/internal/common"
	"github.com/brocat-app/brocat/internal/cryptox"
)

// sealedFileBackend is the preferred tier: entries are sealed with AES-GCM
// under a key derived from a machine-scoped secret. This is at-rest
// obfuscation rather than real secrecy (the secret is derivable on the same
// machine), which matches what the platform secure stores give a mobile app.
type sealedFileBackend struct {
	mu     sync.Mutex
	path   string
	secret []byte
}

type sealedEntry struct {
	Nonce      []byte `json:"n"`
	Ciphertext []byte `json:"c"`
}

type sealedFile struct {
	Salt  []byte                 `json:"salt"`
	Items map[string]sealedEntry `json:"items"`
}

func newSealedFileBackend(dir string, secret []byte) *sealedFileBackend {
	return &sealedFileBackend{path: filepath.Join(dir, "credentials.sealed"), secret: secret}
}

// machineSecret derives a stable per-machine secret from environment
// identity. Weak on purpose: the goal is that a copied credentials file is
// useless on another machine, not resistance to a local attacker.
func machineSecret() []byte {
	host, _ := os.Hostname()
	home, _ := os.UserHomeDir()
	return []byte("brocat/v1|" + host + "|" + home)
}

func (s *sealedFileBackend) load() (*sealedFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &sealedFile{
				Salt:  common.GenerateRandByteArray(16),
				Items: map[string]sealedEntry{},
			}, nil
		}
		return nil, err
	}
	var f sealedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Items == nil {
		f.Items = map[string]sealedEntry{}
	}
	return &f, nil
}

func (s *sealedFileBackend) save(f *sealedFile) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *sealedFileBackend) set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}

	aesKey := cryptox.DeriveKey(s.secret, f.Salt)
	ct, nonce, err := cryptox.SealJSON(value, aesKey)
	if err != nil {
		return err
	}

	f.Items[key] = sealedEntry{Nonce: nonce, Ciphertext: ct}
	return s.save(f)
}

func (s *sealedFileBackend) get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, err
	}

	e, ok := f.Items[key]
	if !ok {
		return nil, nil
	}

	aesKey := cryptox.DeriveKey(s.secret, f.Salt)
	var value []byte
	if err := cryptox.OpenJSON(e.Ciphertext, e.Nonce, aesKey, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func (s *sealedFileBackend) delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := f.Items[key]; !ok {
		return nil
	}
	delete(f.Items, key)
	return s.save(f)
}
