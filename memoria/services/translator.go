package services

import (
	"fmt"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
)

// pageSource es el origen del contenido de una página al atender un fallo.
type pageSource int

const (
	sourceText  pageSource = iota // programa, offset page*page_size
	sourceSwap                    // slot propio en swap
	sourceData                    // programa, a continuación de TEXT
	sourceZero                    // BSS, heap y stack
)

func (p pageSource) String() string {
	switch p {
	case sourceText, sourceData:
		return "programa"
	case sourceSwap:
		return "swap"
	default:
		return "asignación nueva"
	}
}

func (s *Simulator) sourceFor(page int) pageSource {
	descriptor := s.pageTable[page]
	switch {
	case page < s.textPages:
		return sourceText
	case descriptor.Dirty && descriptor.SwapSlot != -1:
		return sourceSwap
	case page < s.textPages+s.dataPages:
		return sourceData
	default:
		return sourceZero
	}
}

// Load devuelve el byte de la dirección virtual, atendiendo el fallo de página si hace falta.
func (s *Simulator) Load(address int) (byte, error) {
	page, offset, err := s.translate(address)
	if err != nil {
		return 0, err
	}

	frame, err := s.ensureResident(page)
	if err != nil {
		return 0, err
	}

	return s.memory[frame*s.params.PageSize+offset], nil
}

// Store escribe value en la dirección virtual y marca la página como modificada.
// La página recién baja a swap cuando se la desaloje.
func (s *Simulator) Store(address int, value byte) error {
	page, offset, err := s.translate(address)
	if err != nil {
		return err
	}

	if !s.pageTable[page].Writable {
		s.logger.Warn("Escritura inválida en segmento de solo lectura", "direccion", address, "pagina", page)
		return fmt.Errorf("%w: dirección %d (página %d)", ErrWriteProtected, address, page)
	}

	frame, err := s.ensureResident(page)
	if err != nil {
		return err
	}

	s.memory[frame*s.params.PageSize+offset] = value
	s.pageTable[page].Dirty = true
	return nil
}

func (s *Simulator) translate(address int) (int, int, error) {
	if s.closed {
		return 0, 0, ErrClosed
	}
	if address < 0 || address >= s.params.NumPages*s.params.PageSize {
		s.logger.Warn("Dirección inválida", "direccion", address)
		return 0, 0, fmt.Errorf("%w: %d no está en [0, %d)", ErrAddressOutOfRange, address, s.params.NumPages*s.params.PageSize)
	}
	return address / s.params.PageSize, address % s.params.PageSize, nil
}

// ensureResident devuelve el marco de la página: TLB, tabla de páginas y, si no está, fallo de página.
// El acceso se registra una sola vez por llamada.
func (s *Simulator) ensureResident(page int) (int, error) {
	if s.tlb.Enabled() {
		if frame, ok := s.tlb.lookup(page); ok {
			s.stats.TlbHits++
			s.logger.Debug(fmt.Sprintf("TLB HIT - Página: %d -> Marco: %d", page, frame))
			s.touch(page)
			return frame, nil
		}
		s.stats.TlbMisses++
		s.logger.Debug(fmt.Sprintf("TLB MISS - Página: %d", page))
	}

	descriptor := &s.pageTable[page]
	if descriptor.Resident {
		frame := descriptor.Location.Index
		s.tlb.insert(page, frame)
		s.touch(page)
		return frame, nil
	}

	s.stats.PageFaults++
	frame, err := s.allocateFrame()
	if err != nil {
		s.logger.Warn("No se pudo atender el fallo de página", "pagina", page, "error", err)
		return -1, err
	}

	source := s.sourceFor(page)
	s.logger.Debug(fmt.Sprintf("Fallo de página: cargando página %d desde %s", page, source), "marco", frame)

	if err := s.fillFrame(page, frame, source); err != nil {
		s.logger.Error("Error cargando la página", "pagina", page, "marco", frame, "error", err)
		return -1, err
	}

	descriptor.Resident = true
	descriptor.Location = models.FrameLocation(frame)
	s.frameOwner[frame] = page
	s.tlb.insert(page, frame)
	s.touch(page)
	return frame, nil
}

func (s *Simulator) fillFrame(page int, frame int, source pageSource) error {
	dest := s.frameBytes(frame)
	pageSize := int64(s.params.PageSize)

	switch source {
	case sourceText:
		return s.program.readPage(int64(page)*pageSize, dest)
	case sourceSwap:
		if err := s.swap.readSlot(s.pageTable[page].SwapSlot, dest); err != nil {
			return err
		}
		s.stats.SwapReads++
		return nil
	case sourceData:
		offset := int64(s.params.TextSize) + int64(page-s.textPages)*pageSize
		return s.program.readPage(offset, dest)
	default:
		clear(dest)
		return nil
	}
}
