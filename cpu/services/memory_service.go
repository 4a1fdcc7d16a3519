package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/cpu/models"
	memoriaModel "github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
	memoriaService "github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/services"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/web/client"
)

// Memory es lo que la CPU necesita de memoria. Lo implementan RemoteMemory y el simulador local.
type Memory interface {
	Load(address int) (byte, error)
	Store(address int, value byte) error
	Dump(w io.Writer, target string) error
}

// RemoteMemory accede al módulo memoria por HTTP.
type RemoteMemory struct {
	ip   string
	port int
}

func NewRemoteMemory(cpuConfig *models.Config) *RemoteMemory {
	return &RemoteMemory{ip: cpuConfig.IpMemory, port: cpuConfig.PortMemory}
}

// Handshake verifica que memoria esté levantada.
func (m *RemoteMemory) Handshake() error {
	response, err := client.DoRequest(m.port, m.ip, "GET", "memoria")
	if err != nil {
		return err
	}
	defer response.Body.Close()

	var message string
	if err := json.NewDecoder(response.Body).Decode(&message); err != nil {
		return fmt.Errorf("%w: %v", models.ErrUnexpectedResponse, err)
	}
	slog.Debug(fmt.Sprintf("Handshake con memoria: %s", message))
	return nil
}

func (m *RemoteMemory) Load(address int) (byte, error) {
	body, err := json.Marshal(memoriaModel.LoadRequest{Address: address})
	if err != nil {
		return 0, err
	}

	response, err := client.DoRequest(m.port, m.ip, "POST", "memoria/load", body)
	if err != nil {
		return 0, remoteError(err)
	}
	defer response.Body.Close()

	var decoded memoriaModel.LoadResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		slog.Error("Error decodificando respuesta de Memoria", slog.Any("error", err))
		return 0, fmt.Errorf("%w: load %d: %v", models.ErrUnexpectedResponse, address, err)
	}
	return decoded.Value, nil
}

func (m *RemoteMemory) Store(address int, value byte) error {
	body, err := json.Marshal(memoriaModel.StoreRequest{Address: address, Value: &value})
	if err != nil {
		return err
	}

	response, err := client.DoRequest(m.port, m.ip, "POST", "memoria/store", body)
	if err != nil {
		return remoteError(err)
	}
	response.Body.Close()
	return nil
}

func (m *RemoteMemory) Dump(w io.Writer, target string) error {
	response, err := client.DoRequest(m.port, m.ip, "GET", "memoria/dump?target="+url.QueryEscape(target))
	if err != nil {
		return remoteError(err)
	}
	defer response.Body.Close()

	_, err = io.Copy(w, response.Body)
	return err
}

// remoteError traduce el status HTTP al error de memoria correspondiente para poder usar errors.Is.
// Un 422 (pedido mal formado) no corresponde a ningún error de memoria y se devuelve tal cual.
func remoteError(err error) error {
	statuses := []struct {
		status int
		kind   error
	}{
		{http.StatusBadRequest, memoriaService.ErrAddressOutOfRange},
		{http.StatusForbidden, memoriaService.ErrWriteProtected},
		{http.StatusInsufficientStorage, memoriaService.ErrSwapExhausted},
		{http.StatusGone, memoriaService.ErrClosed},
		{http.StatusInternalServerError, memoriaService.ErrIO},
	}
	for _, s := range statuses {
		if client.IsStatus(err, s.status) {
			return fmt.Errorf("%w: %w", s.kind, err)
		}
	}
	return err
}
