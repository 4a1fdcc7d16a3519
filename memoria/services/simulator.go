package services

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/btree"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
)

// Options son los parámetros del simulador que no vienen en la línea de inicialización.
type Options struct {
	TlbEntries       int
	SwapSlotTracking string // models.SwapTrackingBitmap (por defecto) o models.SwapTrackingSentinel
	Logger           *slog.Logger
}

// OptionsFromConfig arma las opciones a partir de la configuración del módulo.
func OptionsFromConfig(config *models.Config) Options {
	return Options{
		TlbEntries:       config.TlbEntries,
		SwapSlotTracking: config.SwapSlotTracking,
	}
}

// Simulator es un gestor de memoria virtual paginada bajo demanda.
//
// Un Simulator no es seguro para uso concurrente: cada Load/Store corre hasta terminar antes de aceptar
// el siguiente. Llamarlo desde varias goroutines a la vez es un error del llamador; quien necesite
// atender pedidos concurrentes (por ejemplo el servidor HTTP) tiene que serializarlos.
type Simulator struct {
	params models.InitParams
	logger *slog.Logger

	pageTable []models.PageDescriptor
	tlb       *TLB
	memory    []byte
	numFrames int

	program *programStore
	swap    *swapStore

	textPages int
	dataPages int
	bssPages  int

	clock      logicalClock
	lastAccess []uint64
	frameOwner []int // marco -> página residente, -1 si está libre
	lru        *btree.BTreeG[lruItem]

	stats  models.Stats
	closed bool
}

// ParseInitLine interpreta la primera línea del script:
//
//	program_path swap_path text_size data_size bss_size heap_stack_size page_size num_pages memory_size swap_size
func ParseInitLine(line string) (models.InitParams, error) {
	fields := strings.Fields(line)
	if len(fields) != 10 {
		return models.InitParams{}, fmt.Errorf("%w: se esperaban 10 campos y hay %d", ErrConfig, len(fields))
	}

	names := []string{"text_size", "data_size", "bss_size", "heap_stack_size", "page_size", "num_pages", "memory_size", "swap_size"}
	values := make([]int, len(names))
	for i, name := range names {
		value, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return models.InitParams{}, fmt.Errorf("%w: %s no es un entero: %q", ErrConfig, name, fields[i+2])
		}
		values[i] = value
	}

	return models.InitParams{
		ProgramPath:   fields[0],
		SwapPath:      fields[1],
		TextSize:      values[0],
		DataSize:      values[1],
		BssSize:       values[2],
		HeapStackSize: values[3],
		PageSize:      values[4],
		NumPages:      values[5],
		MemorySize:    values[6],
		SwapSize:      values[7],
	}, nil
}

func validateParams(params models.InitParams, opts Options) error {
	sizes := []struct {
		name  string
		value int
	}{
		{"text_size", params.TextSize},
		{"data_size", params.DataSize},
		{"bss_size", params.BssSize},
		{"heap_stack_size", params.HeapStackSize},
		{"page_size", params.PageSize},
		{"num_pages", params.NumPages},
		{"memory_size", params.MemorySize},
		{"swap_size", params.SwapSize},
	}
	for _, size := range sizes {
		if size.value <= 0 {
			return fmt.Errorf("%w: %s debe ser positivo (%d)", ErrConfig, size.name, size.value)
		}
	}
	if params.MemorySize < params.PageSize {
		return fmt.Errorf("%w: memory_size (%d) no alcanza para un marco de %d bytes", ErrConfig, params.MemorySize, params.PageSize)
	}
	if opts.TlbEntries < 0 {
		return fmt.Errorf("%w: tlb_entries no puede ser negativo (%d)", ErrConfig, opts.TlbEntries)
	}
	switch opts.SwapSlotTracking {
	case "", models.SwapTrackingBitmap, models.SwapTrackingSentinel:
	default:
		return fmt.Errorf("%w: swap_slot_tracking desconocido %q", ErrConfig, opts.SwapSlotTracking)
	}
	return nil
}

// New construye un simulador a partir de la línea de inicialización del script.
func New(initLine string, opts Options) (*Simulator, error) {
	params, err := ParseInitLine(initLine)
	if err != nil {
		return nil, err
	}
	return NewSimulator(params, opts)
}

// NewSimulator abre el programa, crea el swap lleno de Sentinel y arma la tabla de páginas.
// Si algo falla no se devuelve un simulador parcial.
func NewSimulator(params models.InitParams, opts Options) (*Simulator, error) {
	if err := validateParams(params, opts); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracking := opts.SwapSlotTracking
	if tracking == "" {
		tracking = models.SwapTrackingBitmap
	}

	program, err := openProgram(params.ProgramPath)
	if err != nil {
		return nil, err
	}

	swap, err := createSwap(params.SwapPath, params.SwapSize, params.PageSize, tracking)
	if err != nil {
		program.close()
		return nil, err
	}

	sim := &Simulator{
		params:     params,
		logger:     logger,
		program:    program,
		swap:       swap,
		numFrames:  params.MemorySize / params.PageSize,
		memory:     bytes.Repeat([]byte{Sentinel}, params.MemorySize),
		pageTable:  make([]models.PageDescriptor, params.NumPages),
		lastAccess: make([]uint64, params.NumPages),
		textPages:  pagesFor(params.TextSize, params.PageSize),
		dataPages:  pagesFor(params.DataSize, params.PageSize),
		bssPages:   pagesFor(params.BssSize, params.PageSize),
		lru:        btree.NewG(2, lruLess),
	}
	sim.tlb = newTLB(opts.TlbEntries, &sim.clock)

	sim.frameOwner = make([]int, sim.numFrames)
	for i := range sim.frameOwner {
		sim.frameOwner[i] = -1
	}

	for page := range sim.pageTable {
		sim.pageTable[page] = models.PageDescriptor{
			Writable: page >= sim.textPages,
			SwapSlot: -1,
		}
	}

	logger.Info(fmt.Sprintf("Programa \"%s\" cargado", params.ProgramPath),
		"text", params.TextSize,
		"data", params.DataSize,
		"bss", params.BssSize,
		"heap_stack", params.HeapStackSize,
		"marcos", sim.numFrames,
		"slots_swap", swap.slots,
		"tlb", opts.TlbEntries,
		"swap_tracking", tracking)

	return sim, nil
}

func pagesFor(size int, pageSize int) int {
	return (size + pageSize - 1) / pageSize
}

// Close libera la memoria, la tabla de páginas y la TLB y cierra el programa y el swap.
// Llamarlo más de una vez no tiene efecto.
func (s *Simulator) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := errors.Join(s.program.close(), s.swap.close())

	s.logger.Info("Simulador finalizado",
		"tlb_hits", s.stats.TlbHits,
		"tlb_misses", s.stats.TlbMisses,
		"page_faults", s.stats.PageFaults,
		"desalojos", s.stats.Evictions,
		"escrituras_swap", s.stats.SwapWrites,
		"lecturas_swap", s.stats.SwapReads)

	s.memory = nil
	s.pageTable = nil
	s.lastAccess = nil
	s.frameOwner = nil
	s.tlb = newTLB(0, &s.clock)
	s.lru.Clear(false)
	s.clock = logicalClock{}

	return err
}

// Params devuelve los parámetros con los que se construyó el simulador.
func (s *Simulator) Params() models.InitParams {
	return s.params
}

// NumFrames es la cantidad de marcos de la memoria física.
func (s *Simulator) NumFrames() int {
	return s.numFrames
}

// Stats devuelve los contadores de uso.
func (s *Simulator) Stats() models.Stats {
	return s.stats
}

// PageTable devuelve una copia de la tabla de páginas.
func (s *Simulator) PageTable() []models.PageDescriptor {
	tableCopy := make([]models.PageDescriptor, len(s.pageTable))
	copy(tableCopy, s.pageTable)
	return tableCopy
}

// TLBEntries devuelve una copia de las entradas de la TLB.
func (s *Simulator) TLBEntries() []models.TLBEntry {
	return s.tlb.Entries()
}

// SegmentOf indica a qué segmento pertenece una página.
func (s *Simulator) SegmentOf(page int) models.Segment {
	switch {
	case page < s.textPages:
		return models.SegmentText
	case page < s.textPages+s.dataPages:
		return models.SegmentData
	case page < s.textPages+s.dataPages+s.bssPages:
		return models.SegmentBss
	default:
		return models.SegmentHeapStack
	}
}
