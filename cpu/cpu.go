package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/cpu/models"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/cpu/services"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/config"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/log"
)

const (
	//NO borrar el comentario de ConfigPath
	ConfigPath = "cpu/configs/cpu.json" //"./configs/cpu.json"
)

func main() {
	if len(os.Args) < 2 {
		slog.Error("Faltó el script a ejecutar. Ejemplo: ./bin/cpu [script]")
		os.Exit(1)
	}

	config.InitConfig(ConfigPath, &models.CpuConfig)
	log.InitLogger(models.CpuConfig.LogPath, models.CpuConfig.LogLevel)

	slog.Debug(fmt.Sprintf("Memoria: %s:%d", models.CpuConfig.IpMemory, models.CpuConfig.PortMemory))

	memory := services.NewRemoteMemory(models.CpuConfig)
	if err := memory.Handshake(); err != nil {
		slog.Error(fmt.Sprintf("no se pudo conectar con memoria: %v", err))
		os.Exit(1)
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		slog.Error(fmt.Sprintf("no se pudo abrir el script: %v", err))
		os.Exit(1)
	}
	defer file.Close()

	if _, err := services.ExecuteScript(file, os.Stdout, memory); err != nil {
		slog.Error(fmt.Sprintf("error ejecutando el script: %v", err))
		os.Exit(1)
	}
}
