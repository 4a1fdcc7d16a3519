package services

import (
	"fmt"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
)

// lruItem ordena las páginas residentes por último acceso; en empate gana la de menor número.
type lruItem struct {
	stamp uint64
	page  int
}

func lruLess(a, b lruItem) bool {
	if a.stamp != b.stamp {
		return a.stamp < b.stamp
	}
	return a.page < b.page
}

// touch registra un acceso a una página residente.
func (s *Simulator) touch(page int) {
	s.lru.Delete(lruItem{stamp: s.lastAccess[page], page: page})
	s.lastAccess[page] = s.clock.tick()
	s.lru.ReplaceOrInsert(lruItem{stamp: s.lastAccess[page], page: page})
}

// allocateFrame devuelve el primer marco libre o, si no hay, el marco de la página desalojada.
func (s *Simulator) allocateFrame() (int, error) {
	for frame, owner := range s.frameOwner {
		if owner == -1 {
			return frame, nil
		}
	}
	return s.evict()
}

// evict desaloja la página residente menos recientemente accedida. Si está modificada y se puede escribir
// se copia antes a su slot de swap; si no hay slot disponible falla con ErrSwapExhausted sin tocar nada.
func (s *Simulator) evict() (int, error) {
	victim, ok := s.lru.Min()
	if !ok {
		return -1, fmt.Errorf("%w: no hay páginas residentes para desalojar", ErrIO)
	}

	page := victim.page
	descriptor := &s.pageTable[page]
	frame := descriptor.Location.Index

	if descriptor.Dirty && descriptor.Writable {
		slot := descriptor.SwapSlot
		if slot == -1 {
			free, err := s.swap.findFreeSlot()
			if err != nil {
				return -1, err
			}
			if free == -1 {
				s.logger.Warn("No hay slots libres en swap", "pagina", page, "slots", s.swap.slots)
				return -1, fmt.Errorf("%w: no hay lugar para la página %d", ErrSwapExhausted, page)
			}
			slot = free
		}

		if err := s.swap.writeSlot(slot, s.frameBytes(frame)); err != nil {
			return -1, err
		}
		descriptor.SwapSlot = slot
		s.stats.SwapWrites++
		s.logger.Info(fmt.Sprintf("Reemplazo de página: página %d bajada a swap", page), "marco", frame, "slot", slot)
	}

	descriptor.Resident = false
	if descriptor.SwapSlot != -1 {
		descriptor.Location = models.SwapLocation(descriptor.SwapSlot)
	} else {
		descriptor.Location = models.Location{}
	}

	s.lru.Delete(victim)
	s.frameOwner[frame] = -1
	s.tlb.invalidate(page)
	s.stats.Evictions++

	s.logger.Debug("Página desalojada", "pagina", page, "marco", frame, "ubicacion", descriptor.Location.String())
	return frame, nil
}

func (s *Simulator) frameBytes(frame int) []byte {
	start := frame * s.params.PageSize
	return s.memory[start : start+s.params.PageSize]
}
