package services

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/log"
)

// Programa de prueba: TEXT = "PROG", DATA = "DATA".
const testProgram = "PROGDATA"

func writeProgram(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.bin")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write program: %v", err)
	}
	return path
}

func testOptions(tlbEntries int, tracking string) Options {
	return Options{
		TlbEntries:       tlbEntries,
		SwapSlotTracking: tracking,
		Logger:           log.NewLogger(io.Discard, slog.LevelDebug),
	}
}

// initLine arma la línea de inicialización con el programa y un swap dentro de un directorio temporal.
// sizes son los ocho campos numéricos.
func initLine(t *testing.T, program string, sizes string) (string, string) {
	t.Helper()
	swapPath := filepath.Join(t.TempDir(), "swap.bin")
	return fmt.Sprintf("%s %s %s", writeProgram(t, program), swapPath, sizes), swapPath
}

// newTestSimulator usa page_size=4, num_pages=4 y segmentos de una página cada uno.
func newTestSimulator(t *testing.T, memorySize int, swapSize int, opts Options) (*Simulator, string) {
	t.Helper()
	line, swapPath := initLine(t, testProgram, fmt.Sprintf("4 4 4 4 4 4 %d %d", memorySize, swapSize))
	sim, err := New(line, opts)
	if err != nil {
		t.Fatalf("Failed to create simulator: %v", err)
	}
	t.Cleanup(func() { sim.Close() })
	return sim, swapPath
}

func mustLoad(t *testing.T, sim *Simulator, address int) byte {
	t.Helper()
	value, err := sim.Load(address)
	if err != nil {
		t.Fatalf("Expected load(%d) to succeed, got: %v", address, err)
	}
	return value
}

func mustStore(t *testing.T, sim *Simulator, address int, value byte) {
	t.Helper()
	if err := sim.Store(address, value); err != nil {
		t.Fatalf("Expected store(%d, %q) to succeed, got: %v", address, value, err)
	}
}

// checkInvariants verifica que marcos, tabla de páginas, TLB e índice LRU sean coherentes.
func checkInvariants(t *testing.T, sim *Simulator) {
	t.Helper()

	residents := 0
	usedFrames := make(map[int]int)
	for page, descriptor := range sim.pageTable {
		if !descriptor.Writable && descriptor.Dirty {
			t.Errorf("Expected read-only page %d to never be dirty", page)
		}
		if !descriptor.Resident {
			continue
		}
		residents++
		frame := descriptor.Location.Index
		if other, used := usedFrames[frame]; used {
			t.Errorf("Expected frame %d to hold one page, got pages %d and %d", frame, other, page)
		}
		usedFrames[frame] = page
		if sim.frameOwner[frame] != page {
			t.Errorf("Expected frameOwner[%d] = %d, got %d", frame, page, sim.frameOwner[frame])
		}
	}
	if residents > sim.NumFrames() {
		t.Errorf("Expected at most %d resident pages, got %d", sim.NumFrames(), residents)
	}
	if sim.lru.Len() != residents {
		t.Errorf("Expected LRU index to hold %d pages, got %d", residents, sim.lru.Len())
	}

	for _, entry := range sim.TLBEntries() {
		if !entry.Valid {
			continue
		}
		descriptor := sim.pageTable[entry.Page]
		if !descriptor.Resident || descriptor.Location.Index != entry.Frame {
			t.Errorf("Expected TLB entry page %d -> frame %d to match page table, got %+v", entry.Page, entry.Frame, descriptor)
		}
	}
}
