package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// InitLogger permite loguear tanto en consola como en archivo según el nivel que se le pase.
// Si logPath está vacío solo se loguea por consola.
//
// Parámetros:
//   - logPath: la ubicación donde se va encontrar el archivo
//   - logLevel: nivel de logueo, este dato viene definido en el archivo de config.
//
// Ejemplo:
//
//	func main() {
//		log.InitLogger("./logs/memoria.log", "INFO")
//	}
func InitLogger(logPath string, logLevel string) {
	var writer io.Writer = os.Stdout

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), os.ModePerm); err != nil {
			panic(err)
		}
		//Creamos el archivo "modulo".log en modo escritura, si ocurre algún error finalizamos con panic.
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			panic(err)
		}
		// Usa io.MultiWriter para escribir a múltiples destinos: consola y archivo.
		writer = io.MultiWriter(os.Stdout, logFile)
	}

	level, err := convertStringToLogLevel(logLevel)

	slog.SetDefault(NewLogger(writer, level))

	// Escribimos en el log el warning que obtenemos por no setear el logLevel
	if err != nil {
		slog.Warn(err.Error())
	}

	slog.Debug("Se ha configurado correctamente el logger y el archivo de configuración. ")
}

// NewLogger crea un logger de texto sobre cualquier destino. Lo usan los tests para capturar la salida.
func NewLogger(writer io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// convertStringToLogLevel modifica dinámicamente el nivel de log que deseamos tener en el sistema.
func convertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("No existe %s, se coloca INFO por defecto. ", levelStr)
	}
}
