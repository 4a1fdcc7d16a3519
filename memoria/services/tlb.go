package services

import (
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
)

// logicalClock es el reloj del simulador. Cada uso avanza un tick; arranca en cero con cada simulador.
type logicalClock struct {
	now uint64
}

func (c *logicalClock) tick() uint64 {
	c.now++
	return c.now
}

// TLB cachea traducciones página -> marco con reemplazo LRU por timestamp.
// Con capacidad cero queda deshabilitada y todas las traducciones van a la tabla de páginas.
type TLB struct {
	entries []models.TLBEntry
	enabled bool
	clock   *logicalClock
}

func newTLB(capacity int, clock *logicalClock) *TLB {
	return &TLB{
		entries: make([]models.TLBEntry, capacity),
		enabled: capacity > 0,
		clock:   clock,
	}
}

// Enabled indica si la TLB participa de la traducción.
func (t *TLB) Enabled() bool {
	return t.enabled
}

// lookup busca la página. Un hit refresca el timestamp de la entrada. Toda búsqueda avanza el reloj.
func (t *TLB) lookup(page int) (int, bool) {
	if !t.enabled {
		return -1, false
	}

	now := t.clock.tick()
	for i := range t.entries {
		if t.entries[i].Valid && t.entries[i].Page == page {
			t.entries[i].Timestamp = now
			return t.entries[i].Frame, true
		}
	}
	return -1, false
}

// insert agrega o actualiza la traducción de page. Si no hay lugar reemplaza la entrada con menor
// timestamp (en empate, la de menor índice).
func (t *TLB) insert(page int, frame int) {
	if !t.enabled {
		return
	}

	now := t.clock.tick()
	entry := models.TLBEntry{Valid: true, Page: page, Frame: frame, Timestamp: now}

	free := -1
	for i := range t.entries {
		if t.entries[i].Valid && t.entries[i].Page == page {
			t.entries[i] = entry
			return
		}
		if !t.entries[i].Valid && free == -1 {
			free = i
		}
	}

	if free != -1 {
		t.entries[free] = entry
		return
	}

	victimIndex := 0
	for i, e := range t.entries {
		if e.Timestamp < t.entries[victimIndex].Timestamp {
			victimIndex = i
		}
	}
	t.entries[victimIndex] = entry
}

// invalidate elimina la traducción de una página desalojada.
func (t *TLB) invalidate(page int) {
	for i := range t.entries {
		if t.entries[i].Valid && t.entries[i].Page == page {
			t.entries[i] = models.TLBEntry{Page: -1, Frame: -1}
		}
	}
}

// Entries devuelve una copia de las entradas.
func (t *TLB) Entries() []models.TLBEntry {
	entriesCopy := make([]models.TLBEntry, len(t.entries))
	copy(entriesCopy, t.entries)
	return entriesCopy
}
