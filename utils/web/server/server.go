package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// InitServer inicializa el servidor sobre el mux por defecto, en caso de no poder levantarlo retorna un error
//
// Parámetros:
//   - port: puerto donde se iniciará el servidor
//
// Ejemplo:
//
//	func main() {
//		err := server.InitServer(models.MemoryConfig.PortMemory)
//		if err != nil {
//			panic(err)
//		}
//	}
func InitServer(port int) error {
	addr := ":" + strconv.Itoa(port)

	slog.Info("Servidor escuchando", "addr", addr)
	err := http.ListenAndServe(addr, nil)
	if err != nil {
		slog.Error("Error al escuchar en el puerto", "addr", addr, "error", err)
	}
	return err
}

// ErrorResponse es el cuerpo que se devuelve cuando una operación falla.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJsonResponse retorna la respuesta del servidor en formato JSON con status 200
//
// Parámetros:
//   - writer: el http.ResponseWriter con el que se escribe la respuesta HTTP
//   - data: cualquier estructura de datos que querés enviar al cliente, se convierte automáticamente a JSON.
func SendJsonResponse(writer http.ResponseWriter, data interface{}) {
	sendJson(writer, http.StatusOK, data)
}

// SendJsonError retorna un ErrorResponse con el status indicado.
func SendJsonError(writer http.ResponseWriter, status int, message string) {
	sendJson(writer, status, ErrorResponse{Error: message})
}

// SendTextResponse se usa para los volcados de diagnóstico, que son texto plano.
func SendTextResponse(writer http.ResponseWriter, text string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	writer.Write([]byte(text))
}

func sendJson(writer http.ResponseWriter, status int, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, "Error al convertir datos a JSON", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(response)
}
