package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
)

func TestLoadStore_TwoFrames(t *testing.T) {
	sim, _ := newTestSimulator(t, 8, 16, testOptions(0, ""))

	mustStore(t, sim, 4, 'A')
	if value := mustLoad(t, sim, 4); value != 'A' {
		t.Errorf("Expected 'A', got %q", value)
	}

	if err := sim.Store(0, 'X'); !errors.Is(err, ErrWriteProtected) {
		t.Errorf("Expected ErrWriteProtected, got: %v", err)
	}
	if value := mustLoad(t, sim, 0); value != 'P' {
		t.Errorf("Expected 'P' from the program, got %q", value)
	}
	if sim.PageTable()[0].Dirty {
		t.Errorf("Expected text page to stay clean")
	}
	checkInvariants(t, sim)
}

func TestStore_WriteProtectedHasNoEffect(t *testing.T) {
	sim, _ := newTestSimulator(t, 8, 16, testOptions(2, ""))

	if err := sim.Store(1, 'X'); !errors.Is(err, ErrWriteProtected) {
		t.Errorf("Expected ErrWriteProtected, got: %v", err)
	}
	if sim.PageTable()[0].Resident {
		t.Errorf("Expected a rejected store to not fault the page in")
	}
	if sim.Stats() != (models.Stats{}) {
		t.Errorf("Expected no counters to move, got %+v", sim.Stats())
	}
}

func TestLoad_AddressOutOfRange(t *testing.T) {
	sim, _ := newTestSimulator(t, 8, 16, testOptions(0, ""))

	for _, address := range []int{-1, 16, 1000} {
		if _, err := sim.Load(address); !errors.Is(err, ErrAddressOutOfRange) {
			t.Errorf("Expected ErrAddressOutOfRange for load(%d), got: %v", address, err)
		}
		if err := sim.Store(address, 'a'); !errors.Is(err, ErrAddressOutOfRange) {
			t.Errorf("Expected ErrAddressOutOfRange for store(%d), got: %v", address, err)
		}
	}
	if value := mustLoad(t, sim, 15); value != 0 {
		t.Errorf("Expected zero at the last address, got %q", value)
	}
}

func TestLoad_ContentBySegment(t *testing.T) {
	sim, _ := newTestSimulator(t, 16, 16, testOptions(0, ""))

	expected := map[int]byte{0: 'P', 3: 'G', 4: 'D', 7: 'A', 8: 0, 12: 0}
	for address, value := range expected {
		if got := mustLoad(t, sim, address); got != value {
			t.Errorf("Expected %q at %d, got %q", value, address, got)
		}
	}
}

func TestLoad_DataOffsetFollowsTextSize(t *testing.T) {
	// text=2 ocupa la página 0 entera; DATA se lee desde el byte 2 del programa.
	line, _ := initLine(t, "TTDDDD", "2 4 4 4 4 4 16 16")
	sim, err := New(line, testOptions(0, ""))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer sim.Close()

	var page []byte
	for address := 4; address < 8; address++ {
		page = append(page, mustLoad(t, sim, address))
	}
	if string(page) != "DDDD" {
		t.Errorf("Expected \"DDDD\", got %q", page)
	}
}

func TestLoad_ShortProgramIsZeroPadded(t *testing.T) {
	line, _ := initLine(t, "PRO", "4 4 4 4 4 4 16 16")
	sim, err := New(line, testOptions(0, ""))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer sim.Close()

	if value := mustLoad(t, sim, 3); value != 0 {
		t.Errorf("Expected zero after a short read, got %q", value)
	}
	if value := mustLoad(t, sim, 5); value != 0 {
		t.Errorf("Expected zero for a data page past the end of the program, got %q", value)
	}
}

func TestRoundTripThroughSwap(t *testing.T) {
	sim, _ := newTestSimulator(t, 4, 8, testOptions(0, ""))

	mustStore(t, sim, 5, 'Z')
	mustStore(t, sim, 13, 'H')

	if value := mustLoad(t, sim, 5); value != 'Z' {
		t.Errorf("Expected 'Z', got %q", value)
	}
	if value := mustLoad(t, sim, 4); value != 'D' {
		t.Errorf("Expected the rest of the page to survive, got %q", value)
	}
	if value := mustLoad(t, sim, 13); value != 'H' {
		t.Errorf("Expected 'H', got %q", value)
	}

	stats := sim.Stats()
	if stats.SwapReads != 2 {
		t.Errorf("Expected 2 swap reads, got %d", stats.SwapReads)
	}
	checkInvariants(t, sim)
}

func TestStore_RecordsASingleAccess(t *testing.T) {
	sim, _ := newTestSimulator(t, 8, 16, testOptions(2, ""))

	mustStore(t, sim, 4, 'A')
	stats := sim.Stats()
	if stats.TlbMisses != 1 || stats.TlbHits != 0 || stats.PageFaults != 1 {
		t.Errorf("Expected 1 miss and 1 fault, got %+v", stats)
	}

	valid := 0
	for _, entry := range sim.TLBEntries() {
		if entry.Valid {
			valid++
		}
	}
	if valid != 1 {
		t.Errorf("Expected a single TLB entry, got %d", valid)
	}

	mustLoad(t, sim, 4)
	if sim.Stats().TlbHits != 1 {
		t.Errorf("Expected a TLB hit, got %+v", sim.Stats())
	}
}

func TestLoad_ResidentPageMissingFromTLB(t *testing.T) {
	sim, _ := newTestSimulator(t, 16, 16, testOptions(1, ""))

	mustLoad(t, sim, 0)
	mustLoad(t, sim, 4)
	mustLoad(t, sim, 0)

	stats := sim.Stats()
	if stats.PageFaults != 2 || stats.TlbMisses != 3 {
		t.Errorf("Expected 2 faults and 3 misses, got %+v", stats)
	}
	if entry := sim.TLBEntries()[0]; entry.Page != 0 || entry.Frame != 0 {
		t.Errorf("Expected the TLB to hold page 0 again, got %+v", entry)
	}
}

func TestTLBDisabled(t *testing.T) {
	sim, _ := newTestSimulator(t, 8, 16, testOptions(0, ""))

	mustLoad(t, sim, 0)
	mustLoad(t, sim, 0)

	stats := sim.Stats()
	if stats.TlbHits != 0 || stats.TlbMisses != 0 || stats.PageFaults != 1 {
		t.Errorf("Expected only the page table to be used, got %+v", stats)
	}
}

func TestInvariantsUnderPressure(t *testing.T) {
	for _, tlbEntries := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("tlb=%d", tlbEntries), func(t *testing.T) {
			sim, _ := newTestSimulator(t, 8, 16, testOptions(tlbEntries, ""))
			written := make(map[int]byte)

			for i := 0; i < 64; i++ {
				address := (i * 7) % 16
				if address >= 4 && i%3 == 0 {
					value := byte('a' + i%26)
					mustStore(t, sim, address, value)
					written[address] = value
				} else {
					value := mustLoad(t, sim, address)
					if expected, ok := written[address]; ok && value != expected {
						t.Errorf("Expected %q at %d, got %q", expected, address, value)
					}
				}
				checkInvariants(t, sim)
			}
		})
	}
}

func TestLoad_IOErrorLeavesFrameFree(t *testing.T) {
	sim, _ := newTestSimulator(t, 8, 16, testOptions(0, ""))
	sim.program.file.Close()

	if _, err := sim.Load(0); !errors.Is(err, ErrIO) {
		t.Fatalf("Expected ErrIO, got: %v", err)
	}
	if sim.PageTable()[0].Resident {
		t.Errorf("Expected page 0 to stay non-resident")
	}
	for frame, owner := range sim.frameOwner {
		if owner != -1 {
			t.Errorf("Expected frame %d to stay free, got page %d", frame, owner)
		}
	}
	checkInvariants(t, sim)
}

func TestSourceFor(t *testing.T) {
	sim, _ := newTestSimulator(t, 8, 16, testOptions(0, ""))

	sim.pageTable[3].Dirty = true
	sim.pageTable[3].SwapSlot = 2

	expected := []pageSource{sourceText, sourceData, sourceZero, sourceSwap}
	for page, source := range expected {
		if got := sim.sourceFor(page); got != source {
			t.Errorf("Expected page %d from %s, got %s", page, source, got)
		}
	}
}
