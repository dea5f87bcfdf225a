package localfs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/phenrril/lojamobile/internal/domain"
)

// KV guarda cada clave en un archivo propio dentro de dir.
type KV struct {
	dir string
	mu  sync.RWMutex
}

func New(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	return &KV{dir: dir}, nil
}

// las claves como "@ChatHistory:v1" no son nombres de archivo portables
func (s *KV) path(key string) string {
	return filepath.Join(s.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+".kv")
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return b, nil
}

func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

func (s *KV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}
