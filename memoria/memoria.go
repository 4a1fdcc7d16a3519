package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	memoryHandler "github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/handlers"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/helpers"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/models"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/services"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/web/handlers"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/web/server"
)

const (
	//NO borrar el comentario de ConfigPath
	ConfigPath = "memoria/configs/memoria.json" //"./configs/memoria.json"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Uso: ./bin/memoria [script] | ./bin/memoria serve [script]")
		os.Exit(1)
	}

	helpers.InitMemory(ConfigPath)
	opts := services.OptionsFromConfig(models.MemoryConfig)

	if os.Args[1] == "serve" {
		if len(os.Args) < 3 {
			slog.Error("Faltó el script con la línea de inicialización. Ejemplo: ./bin/memoria serve [script]")
			os.Exit(1)
		}
		serve(os.Args[2], opts)
		return
	}

	err := services.RunScriptFile(os.Args[1], os.Stdout, services.ScriptOptions{
		Simulator: opts,
		DumpPath:  models.MemoryConfig.DumpPath,
	})
	if err != nil {
		slog.Error(fmt.Sprintf("error ejecutando el script: %v", err))
		os.Exit(1)
	}
}

func serve(scriptPath string, opts services.Options) {
	sim, err := services.NewFromScriptFile(scriptPath, opts)
	if err != nil {
		slog.Error(fmt.Sprintf("error inicializando memoria: %v", err))
		os.Exit(1)
	}
	defer sim.Close()

	http.HandleFunc("GET /", handlers.HandshakeHandler("Bienvenido al módulo de Memoria"))
	http.HandleFunc("GET /memoria", handlers.HandshakeHandler("Memoria en funcionamiento 🚀"))
	memoryHandler.NewMemoryHandler(sim).Register(http.DefaultServeMux)
	slog.Info("Memoria lista")

	err = server.InitServer(models.MemoryConfig.PortMemory)
	if err != nil {
		slog.Error(fmt.Sprintf("error initializing server: %v", err))
		panic(err)
	}
}
