// Package apikey keeps the API keys issued to logged-in users.
package apikey

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
)

const (
	KeyLength = 32
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Store is an in-process record of issued keys and their owners. One mutex
// guards the whole map.
type Store struct {
	mu   sync.Mutex
	keys map[string]string
}

func NewStore() *Store {
	return &Store{keys: make(map[string]string)}
}

// Issue generates a fresh key for owner and records it.
func (s *Store) Issue(owner string) (string, error) {
	key, err := Generate()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = owner
	return key, nil
}

// Owner reports who a key was issued to.
func (s *Store) Owner(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.keys[key]
	return owner, ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// Generate returns KeyLength random alphanumerics.
func Generate() (string, error) {
	buf := make([]byte, KeyLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate api key: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
