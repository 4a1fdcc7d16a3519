package services

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
)

// Sentinel es el byte con el que se inicializan el swap y la memoria física.
const Sentinel byte = '-'

// swapStore es el archivo de swap, dividido en slots de pageSize bytes.
//
// Hay dos formas de saber si un slot está libre:
//   - bitmap: se lleva la ocupación en used; un slot nunca escrito está libre.
//   - sentinel: un slot está libre si todos sus bytes valen Sentinel. Una página cuyo contenido sea
//     todo Sentinel se confunde con un slot libre y puede ser pisada por otra.
type swapStore struct {
	path     string
	file     *os.File
	pageSize int
	slots    int
	tracking string
	used     []bool
}

// createSwap crea (o trunca) el archivo de swap y lo llena con Sentinel.
func createSwap(path string, size int, pageSize int, tracking string) (*swapStore, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo crear el swap: %w", ErrIO, err)
	}

	if _, err := file.WriteAt(bytes.Repeat([]byte{Sentinel}, size), 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: error inicializando el swap: %w", ErrIO, err)
	}

	slots := size / pageSize
	return &swapStore{
		path:     path,
		file:     file,
		pageSize: pageSize,
		slots:    slots,
		tracking: tracking,
		used:     make([]bool, slots),
	}, nil
}

func (s *swapStore) offset(slot int) int64 {
	return int64(slot) * int64(s.pageSize)
}

func (s *swapStore) readSlot(slot int, dest []byte) error {
	if _, err := s.file.ReadAt(dest[:s.pageSize], s.offset(slot)); err != nil {
		return fmt.Errorf("%w: error leyendo el slot %d del swap: %w", ErrIO, slot, err)
	}
	return nil
}

func (s *swapStore) writeSlot(slot int, src []byte) error {
	if _, err := s.file.WriteAt(src[:s.pageSize], s.offset(slot)); err != nil {
		return fmt.Errorf("%w: error escribiendo el slot %d del swap: %w", ErrIO, slot, err)
	}
	s.used[slot] = true
	return nil
}

// findFreeSlot devuelve el primer slot libre en orden ascendente, o -1 si no hay.
func (s *swapStore) findFreeSlot() (int, error) {
	if s.tracking != models.SwapTrackingSentinel {
		for slot, used := range s.used {
			if !used {
				return slot, nil
			}
		}
		return -1, nil
	}

	buffer := make([]byte, s.pageSize)
	for slot := 0; slot < s.slots; slot++ {
		if err := s.readSlot(slot, buffer); err != nil {
			return -1, err
		}
		if isSentinelPage(buffer) {
			return slot, nil
		}
	}
	return -1, nil
}

func isSentinelPage(page []byte) bool {
	for _, b := range page {
		if b != Sentinel {
			return false
		}
	}
	return true
}

func (s *swapStore) close() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("%w: error cerrando el swap: %w", ErrIO, err)
	}
	return nil
}
