package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/services"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/web/server"
)

// MemoryHandler expone un simulador por HTTP. Los pedidos mal formados se rechazan con 422; 400 queda
// reservado para direcciones fuera de rango. El simulador no es seguro para uso concurrente,
// así que cada request toma el lock antes de usarlo.
type MemoryHandler struct {
	lock sync.Mutex
	sim  *services.Simulator
}

func NewMemoryHandler(sim *services.Simulator) *MemoryHandler {
	return &MemoryHandler{sim: sim}
}

// Register agrega las rutas de memoria al mux.
func (h *MemoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /memoria/load", h.LoadHandler)
	mux.HandleFunc("POST /memoria/store", h.StoreHandler)
	mux.HandleFunc("GET /memoria/dump", h.DumpHandler)
	mux.HandleFunc("GET /memoria/stats", h.StatsHandler)
}

func (h *MemoryHandler) LoadHandler(w http.ResponseWriter, r *http.Request) {
	var request models.LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		slog.Error("Invalid request", "error", err)
		server.SendJsonError(w, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	h.lock.Lock()
	value, err := h.sim.Load(request.Address)
	h.lock.Unlock()

	if err != nil {
		sendSimulatorError(w, err)
		return
	}

	slog.Debug(fmt.Sprintf("## Lectura - Dirección: %d - Valor: %q", request.Address, value))
	server.SendJsonResponse(w, models.LoadResponse{Address: request.Address, Value: value})
}

func (h *MemoryHandler) StoreHandler(w http.ResponseWriter, r *http.Request) {
	var request models.StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Value == nil {
		slog.Error("Invalid request", "error", err)
		server.SendJsonError(w, http.StatusUnprocessableEntity, "Invalid request")
		return
	}
	value := *request.Value

	h.lock.Lock()
	err := h.sim.Store(request.Address, value)
	h.lock.Unlock()

	if err != nil {
		sendSimulatorError(w, err)
		return
	}

	slog.Debug(fmt.Sprintf("## Escritura - Dirección: %d - Valor: %q", request.Address, value))
	server.SendJsonResponse(w, models.StoreResponse{Address: request.Address, Value: value})
}

// DumpHandler devuelve en texto plano el volcado de ?target=ram|swap|table|tlb.
func (h *MemoryHandler) DumpHandler(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	switch target {
	case services.DumpRam, services.DumpSwap, services.DumpTable, services.DumpTLB:
	default:
		server.SendJsonError(w, http.StatusUnprocessableEntity, fmt.Sprintf("target inválido: %q", target))
		return
	}

	var builder strings.Builder
	h.lock.Lock()
	err := h.sim.Dump(&builder, target)
	h.lock.Unlock()

	if err != nil {
		sendSimulatorError(w, err)
		return
	}
	server.SendTextResponse(w, builder.String())
}

func (h *MemoryHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	h.lock.Lock()
	stats := h.sim.Stats()
	h.lock.Unlock()

	server.SendJsonResponse(w, stats)
}

func sendSimulatorError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Error en memoria", "error", err)
	} else {
		slog.Warn("Pedido rechazado", "status", status, "error", err)
	}
	server.SendJsonError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrAddressOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrWriteProtected):
		return http.StatusForbidden
	case errors.Is(err, services.ErrSwapExhausted):
		return http.StatusInsufficientStorage
	case errors.Is(err, services.ErrClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
