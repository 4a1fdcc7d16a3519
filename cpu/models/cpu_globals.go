package models

import "errors"

// Config es la configuración del módulo cpu (cpu/configs/cpu.json).
type Config struct {
	IpMemory   string `json:"ip_memory"`
	PortMemory int    `json:"port_memory"`
	LogLevel   string `json:"log_level"`
	LogPath    string `json:"log_path"`
}

var CpuConfig *Config

// ExecutionResult resume la ejecución de un script de directivas.
type ExecutionResult struct {
	Executed int
	Failed   int
	Ignored  int
}

// DEFINICION DE ERRORES
var ErrInvalidInstruction = errors.New("invalid instruction")
var ErrUnexpectedResponse = errors.New("respuesta inesperada de memoria")
