package models

// Config es la configuración del módulo memoria (memoria/configs/memoria.json).
type Config struct {
	IpMemory         string `json:"ip_memory"`
	PortMemory       int    `json:"port_memory"`
	LogLevel         string `json:"log_level"`
	LogPath          string `json:"log_path"`
	TlbEntries       int    `json:"tlb_entries"`
	SwapSlotTracking string `json:"swap_slot_tracking"` // "bitmap" o "sentinel"
	DumpPath         string `json:"dump_path"`
}

const (
	SwapTrackingBitmap   = "bitmap"
	SwapTrackingSentinel = "sentinel"
)

// DefaultConfig se usa cuando no existe el archivo de configuración.
func DefaultConfig() *Config {
	return &Config{
		IpMemory:         "127.0.0.1",
		PortMemory:       8002,
		LogLevel:         "INFO",
		LogPath:          "./logs/memoria.log",
		TlbEntries:       0,
		SwapSlotTracking: SwapTrackingBitmap,
	}
}

var MemoryConfig *Config
