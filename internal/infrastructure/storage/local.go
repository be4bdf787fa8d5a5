// Package storage archiva los PDF originales de las boletas en el sistema
// de archivos local, bajo el directorio configurado.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implementa ingest.FileStore sobre un directorio local.
type LocalStore struct {
	dir string
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// path valida el nombre: los nombres vienen generados internamente
// (uuid.pdf), nunca rutas del cliente.
func (s *LocalStore) path(name string) (string, error) {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", fmt.Errorf("nombre de archivo inválido: %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Save escribe el archivo.
func (s *LocalStore) Save(name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// Open abre el archivo para lectura; el llamador cierra.
func (s *LocalStore) Open(name string) (io.ReadCloser, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Remove elimina el archivo. No es error que ya no exista.
func (s *LocalStore) Remove(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
