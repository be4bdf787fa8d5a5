package ingest

import "io"

// PageTextExtractor produce el texto plano concatenado de las páginas de un
// PDF. FirstPages limita la lectura a las primeras n páginas (detección de
// proveedor sin recorrer el documento completo).
type PageTextExtractor interface {
	Text(data []byte) (string, error)
	FirstPages(data []byte, n int) (string, error)
}

// FileStore guarda los PDF originales de las boletas procesadas.
type FileStore interface {
	Save(name string, data []byte) error
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
}

// BatchFile un documento subido en un lote.
type BatchFile struct {
	Name string
	Data []byte
}
