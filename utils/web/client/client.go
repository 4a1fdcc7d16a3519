package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// StatusError se devuelve cuando el servidor responde con un status distinto de 200.
// Message contiene el campo "error" del cuerpo si el servidor lo envió.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Status Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("Status Error: %d %s - %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// DoRequest es una función genérica para realizar peticiones HTTP (GET, POST, PUT, DELETE, etc.) desde un cliente.
// Retorna la respuesta del servidor. Si el status no es 200 el cuerpo se consume para armar un *StatusError.
//
// Parámetros:
//   - port: el puerto al que se hará la petición
//   - ip: la IP o dominio del servidor
//   - metodo: metodo HTTP
//   - query: parte final de la URL
//   - bodies ...[]byte: (opcional) body del request (usado por ejemplo en un POST/PUT), puede pasarse vacío.
//
// Ejemplo:
//
//	func main() {
//		body, _ := json.Marshal(LoadRequest{Address: 4})
//		response, err := client.DoRequest(8002, "127.0.0.1", "POST", "memoria/load", body)
//		if err != nil {
//			slog.Error(fmt.Sprintf("Ocurrió un error: %v", err))
//			return
//		}
//		defer response.Body.Close()
//	}
func DoRequest(port int, ip string, metodo string, query string, bodies ...[]byte) (*http.Response, error) {
	url := fmt.Sprintf("http://%s:%d/%s", ip, port, query)

	req, err := http.NewRequest(metodo, url, ifBody(bodies...))
	if err != nil {
		slog.Error(fmt.Sprintf("error creando request a ip: %s puerto: %d", ip, port))
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	respuesta, err := httpClient.Do(req)
	if err != nil {
		slog.Error(fmt.Sprintf("error enviando request a ip: %s puerto: %d - %v", ip, port, err))
		return nil, err
	}

	if respuesta.StatusCode != http.StatusOK {
		defer respuesta.Body.Close()
		statusErr := &StatusError{StatusCode: respuesta.StatusCode}

		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(respuesta.Body).Decode(&body); err == nil {
			statusErr.Message = body.Error
		}
		slog.Debug(statusErr.Error(), "url", url)
		return nil, statusErr
	}

	return respuesta, nil
}

// IsStatus indica si err es un *StatusError con el código dado.
func IsStatus(err error, status int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == status
}

func ifBody(bodies ...[]byte) io.Reader {
	if len(bodies) == 0 {
		return nil
	}
	return bytes.NewBuffer(bodies[0])
}
