package services

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// programStore es la imagen del programa (TEXT seguido de DATA), de solo lectura y sin encabezado.
type programStore struct {
	path string
	file *os.File
}

func openProgram(path string) (*programStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo abrir el programa: %w", ErrIO, err)
	}
	return &programStore{path: path, file: file}, nil
}

// readPage copia una página desde offset. Si el archivo termina antes, el resto se completa con ceros.
func (p *programStore) readPage(offset int64, dest []byte) error {
	n, err := p.file.ReadAt(dest, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: error leyendo el programa en el offset %d: %w", ErrIO, offset, err)
	}
	clear(dest[n:])
	return nil
}

func (p *programStore) close() error {
	if err := p.file.Close(); err != nil {
		return fmt.Errorf("%w: error cerrando el programa: %w", ErrIO, err)
	}
	return nil
}
