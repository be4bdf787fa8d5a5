// Package pdftext extrae el texto plano de un PDF página por página.
// Es el colaborador de entrada del motor de extracción: entrega líneas de
// texto; la interpretación del contenido es de internal/domain/extraction.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor implementa ingest.PageTextExtractor sobre ledongthuc/pdf.
type Extractor struct{}

// New construye el extractor.
func New() *Extractor {
	return &Extractor{}
}

// Text devuelve el texto de todas las páginas concatenado con saltos de
// línea entre filas y entre páginas.
func (e *Extractor) Text(data []byte) (string, error) {
	return e.pages(data, 0)
}

// FirstPages devuelve el texto de las primeras n páginas (detección de
// proveedor sin recorrer el documento completo).
func (e *Extractor) FirstPages(data []byte, n int) (string, error) {
	return e.pages(data, n)
}

// pages recorre las páginas (todas si limit es 0). La librería puede hacer
// panic con PDFs malformados, de ahí el recover.
func (e *Extractor) pages(data []byte, limit int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF malformado: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("abrir PDF: %w", err)
	}

	numPages := reader.NumPage()
	if limit > 0 && numPages > limit {
		numPages = limit
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("leer página %d: %w", i, err)
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
