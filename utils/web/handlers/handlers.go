package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/web/server"
)

// HandshakeHandler responde message como JSON. La CPU lo usa para verificar que memoria esté levantada
// antes de ejecutar un script.
//
// Ejemplo:
//
//	func main() {
//		http.HandleFunc("GET /memoria", handlers.HandshakeHandler("Memoria en funcionamiento"))
//	}
func HandshakeHandler(message string) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		slog.Debug("Handshake recibido", "origen", request.RemoteAddr, "path", request.URL.Path)
		server.SendJsonResponse(writer, message)
	}
}
