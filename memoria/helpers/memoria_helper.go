package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/config"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/log"
)

// crea un directorio en el path especificado.
func CreateDirectory(dir string) error {
	err := os.MkdirAll(dir, os.ModePerm)

	if err != nil {
		slog.Error(fmt.Sprintf("Error al crear el directorio %s: %v", dir, err))
		return err
	}

	slog.Debug(fmt.Sprintf("Directorio %s creado o ya existía.", dir))
	return nil
}

// CreateDumpFile crea el archivo de dump para target dentro de dir.
func CreateDumpFile(dir string, target string) (*os.File, error) {
	if err := CreateDirectory(dir); err != nil {
		return nil, err
	}

	file, err := os.Create(filepath.Join(dir, GetDumpName(target)))
	if err != nil {
		slog.Error(fmt.Sprintf("error al crear archivo de dump: %v", err))
		return nil, err
	}
	return file, nil
}

// InitMemory carga la configuración (si el archivo no existe quedan los valores por defecto) e inicia el logger.
func InitMemory(configPath string) {
	models.MemoryConfig = models.DefaultConfig()
	if err := config.LoadConfig(configPath, models.MemoryConfig); err != nil {
		log.InitLogger(models.MemoryConfig.LogPath, models.MemoryConfig.LogLevel)
		slog.Warn("No se pudo leer la configuración, se usan los valores por defecto", "path", configPath, "error", err)
		return
	}
	log.InitLogger(models.MemoryConfig.LogPath, models.MemoryConfig.LogLevel)

	slog.Debug(fmt.Sprintf("Port Memory: %d", models.MemoryConfig.PortMemory))
	slog.Debug(fmt.Sprintf("TLB: %d entradas, swap tracking: %s", models.MemoryConfig.TlbEntries, models.MemoryConfig.SwapSlotTracking))
}

func GetDumpName(target string) string {
	timestamp := time.Now().Format("20060102-150405.000000")
	return fmt.Sprintf("%s-%s.dmp", target, timestamp)
}
