package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// credentials contenido persistido del archivo de credenciales.
type credentials struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// FileStore guarda el token de sesión en un archivo JSON con permisos 0600.
// Archivo ausente equivale a "sin sesión".
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore construye el store sobre path (ej. ~/.mtaabiz/credentials.json).
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path ruta del archivo de credenciales.
func (s *FileStore) Path() string { return s.path }

// Token devuelve el token guardado o "" si no hay sesión.
func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("leer credenciales: %w", err)
	}
	var c credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return "", fmt.Errorf("parsear credenciales: %w", err)
	}
	return stripScheme(c.Token), nil
}

// SaveToken reemplaza el token guardado.
func (s *FileStore) SaveToken(token string) error {
	token = stripScheme(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("token vacío")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(credentials{Token: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	// escritura atómica: tmp + rename
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("escribir credenciales: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("escribir credenciales: %w", err)
	}
	return nil
}

// ClearToken borra el archivo. Si no existe no es error.
func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar credenciales: %w", err)
	}
	return nil
}

// stripScheme tolera tokens pegados con su esquema ("Token x", "Bearer x").
func stripScheme(s string) string {
	lower := strings.ToLower(s)
	for _, p := range []string{"token ", "bearer "} {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}
