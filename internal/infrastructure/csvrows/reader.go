// Package csvrows convierte un CSV cargado por el usuario en filas nombre de columna → valor.
package csvrows

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrNoHeader el archivo no tiene línea de cabecera.
var ErrNoHeader = errors.New("csv sin cabecera")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read lee todo el CSV. La primera línea es la cabecera (nombres sin espacios alrededor).
//
// Las filas pueden tener menos celdas que la cabecera: las columnas faltantes no aparecen
// en el mapa. Las celdas sobrantes se ignoran y las líneas en blanco se omiten.
// Si el contenido no es UTF-8 válido se decodifica como Windows-1252 (exportaciones de Excel).
func Read(r io.Reader) ([]map[string]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("decodificar csv: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := nextRecord(cr)
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := nextRecord(cr)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i >= len(rec) {
				break
			}
			if name == "" {
				continue
			}
			if _, dup := row[name]; !dup {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// nextRecord devuelve el siguiente registro no vacío.
func nextRecord(cr *csv.Reader) ([]string, error) {
	for {
		rec, err := cr.Read()
		if err != nil {
			return nil, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		return rec, nil
	}
}
