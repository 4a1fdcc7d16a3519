package services

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
)

// Targets válidos de Dump.
const (
	DumpRam   = "ram"
	DumpSwap  = "swap"
	DumpTable = "table"
	DumpTLB   = "tlb"
)

// Dump escribe en w el volcado pedido. No modifica el estado del simulador.
func (s *Simulator) Dump(w io.Writer, target string) error {
	if s.closed {
		return ErrClosed
	}

	switch target {
	case DumpRam:
		return s.DumpMemory(w)
	case DumpSwap:
		return s.DumpSwap(w)
	case DumpTable:
		return s.DumpPageTable(w)
	case DumpTLB:
		return s.DumpTLB(w)
	default:
		return fmt.Errorf("target de dump desconocido: %q", target)
	}
}

// DumpMemory muestra cada marco de la memoria física en hexadecimal y ASCII.
func (s *Simulator) DumpMemory(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}

	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "=== MAIN MEMORY CONTENTS ===")
	fmt.Fprintf(out, "Memory size: %d bytes, Page size: %d bytes, Number of frames: %d\n",
		s.params.MemorySize, s.params.PageSize, s.numFrames)

	for frame := 0; frame < s.numFrames; frame++ {
		fmt.Fprintf(out, "Frame %d: ", frame)
		writeHexRow(out, s.frameBytes(frame))
	}
	fmt.Fprint(out, "=============================\n\n")
	return out.Flush()
}

// DumpSwap muestra cada slot del archivo de swap. Un slot ilegible se informa y se sigue con el resto.
func (s *Simulator) DumpSwap(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}

	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "=== SWAP FILE CONTENTS ===")
	fmt.Fprintf(out, "Swap size: %d bytes, Page size: %d bytes, Number of swap pages: %d\n",
		s.params.SwapSize, s.params.PageSize, s.swap.slots)

	buffer := make([]byte, s.params.PageSize)
	for slot := 0; slot < s.swap.slots; slot++ {
		if err := s.swap.readSlot(slot, buffer); err != nil {
			s.logger.Error("Error leyendo el swap para el dump", "slot", slot, "error", err)
			fmt.Fprintf(out, "Swap Page %d: [Error reading]\n", slot)
			continue
		}
		fmt.Fprintf(out, "Swap Page %d: ", slot)
		writeHexRow(out, buffer)
	}
	fmt.Fprint(out, "===========================\n\n")
	return out.Flush()
}

// DumpPageTable muestra la tabla de páginas con el segmento de cada página.
func (s *Simulator) DumpPageTable(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}

	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "=== PAGE TABLE ===")
	fmt.Fprintf(out, "Number of pages: %d\n", s.params.NumPages)
	fmt.Fprintln(out, "Page | V | D | P | Frame/Swap | Segment")
	fmt.Fprintln(out, "-----|---|---|---|------------|--------")

	for page, descriptor := range s.pageTable {
		fmt.Fprintf(out, "%4d | %d | %d | %d |", page,
			boolToInt(descriptor.Resident), boolToInt(descriptor.Dirty), boolToInt(!descriptor.Writable))

		if descriptor.Location.Kind == models.Unassigned {
			fmt.Fprint(out, "      -    |")
		} else {
			fmt.Fprintf(out, "    %4d   |", descriptor.Location.Index)
		}
		fmt.Fprintf(out, " %s\n", s.SegmentOf(page))
	}

	fmt.Fprintln(out, "==================")
	fmt.Fprintln(out, "Legend: V=Valid, D=Dirty, P=Permission (1=Read-Only, 0=Read/Write)")
	fmt.Fprint(out, "        Frame/Swap: Frame number if in memory (V=1), Swap page if swapped out\n\n")
	return out.Flush()
}

// DumpTLB muestra las entradas de la TLB.
func (s *Simulator) DumpTLB(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}

	out := bufio.NewWriter(w)
	if !s.tlb.Enabled() {
		fmt.Fprintln(out, "TLB deshabilitada")
		return out.Flush()
	}

	fmt.Fprintln(out, "=== TLB CONTENTS ===")
	fmt.Fprintf(out, "TLB size: %d entries\n", len(s.tlb.entries))
	fmt.Fprintln(out, "Entry | Valid | Page | Frame | Timestamp")
	fmt.Fprintln(out, "------|-------|------|-------|----------")

	for i, entry := range s.tlb.entries {
		fmt.Fprintf(out, "  %d   |   %d   |", i, boolToInt(entry.Valid))
		if entry.Valid {
			fmt.Fprintf(out, " %4d | %5d |  %8d\n", entry.Page, entry.Frame, entry.Timestamp)
		} else {
			fmt.Fprintln(out, "   -  |   -   |     -")
		}
	}
	fmt.Fprint(out, "====================\n\n")
	return out.Flush()
}

// writeHexRow escribe los bytes en hexadecimal, un separador y su proyección ASCII ('.' si no es imprimible).
func writeHexRow(out *bufio.Writer, data []byte) {
	for _, b := range data {
		fmt.Fprintf(out, "%02X ", b)
	}
	out.WriteString("| ")
	for _, b := range data {
		if b >= 32 && b <= 126 {
			out.WriteByte(b)
		} else {
			out.WriteByte('.')
		}
	}
	out.WriteByte('\n')
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
