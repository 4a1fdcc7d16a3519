package models

import "fmt"

// InitParams son los diez campos de la línea de inicialización del script.
type InitParams struct {
	ProgramPath   string
	SwapPath      string
	TextSize      int
	DataSize      int
	BssSize       int
	HeapStackSize int
	PageSize      int
	NumPages      int
	MemorySize    int
	SwapSize      int
}

// LocationKind indica dónde vive hoy el contenido de una página.
type LocationKind int

const (
	Unassigned LocationKind = iota
	InFrame
	InSwap
)

// Location es excluyente: un marco, un slot de swap o nada.
type Location struct {
	Kind  LocationKind
	Index int
}

func FrameLocation(frame int) Location { return Location{Kind: InFrame, Index: frame} }
func SwapLocation(slot int) Location   { return Location{Kind: InSwap, Index: slot} }

func (l Location) String() string {
	switch l.Kind {
	case InFrame:
		return fmt.Sprintf("frame %d", l.Index)
	case InSwap:
		return fmt.Sprintf("swap %d", l.Index)
	default:
		return "-"
	}
}

// PageDescriptor es una entrada de la tabla de páginas.
type PageDescriptor struct {
	Resident bool
	Dirty    bool
	Writable bool // false para páginas de TEXT, no cambia nunca
	Location Location
	// SwapSlot es el slot propio de la página una vez que bajó a swap (-1 si nunca bajó).
	// Se conserva mientras la página está residente para reutilizarlo en el próximo desalojo.
	SwapSlot int
}

// TLBEntry es una entrada de la TLB.
type TLBEntry struct {
	Valid     bool
	Page      int
	Frame     int
	Timestamp uint64
}

// Segment identifica el segmento del programa al que pertenece una página.
type Segment int

const (
	SegmentText Segment = iota
	SegmentData
	SegmentBss
	SegmentHeapStack
)

func (s Segment) String() string {
	switch s {
	case SegmentText:
		return "TEXT"
	case SegmentData:
		return "DATA"
	case SegmentBss:
		return "BSS"
	default:
		return "H/S"
	}
}

// Stats son los contadores de uso de un simulador.
type Stats struct {
	TlbHits    int `json:"tlb_hits"`
	TlbMisses  int `json:"tlb_misses"`
	PageFaults int `json:"page_faults"`
	Evictions  int `json:"evictions"`
	SwapWrites int `json:"swap_writes"`
	SwapReads  int `json:"swap_reads"`
}
