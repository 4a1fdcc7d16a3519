package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Para su uso se debe posicionar en la carpeta scripts
// > ./update_config ip_memory 192.168.1.100
// > ./update_config ip_memory 127.0.0.1 port_memory 8002 tlb_entries 8
// > ./update_config swap_slot_tracking sentinel

// Módulos cuyas carpetas configs/ se recorren.
var modules = []string{"cpu", "memoria"}

func main() {
	// Los argumentos van en pares: clave1 valor1 clave2 valor2 ...
	if len(os.Args) < 3 || len(os.Args)%2 != 1 {
		fmt.Println("Uso: update_config <clave_1> <valor_1> [<clave_2> <valor_2> ...]")
		fmt.Println("Ejemplo: update_config ip_memory 192.168.0.10 tlb_entries 8")
		return
	}

	updates := parseUpdates(os.Args[1:])

	fmt.Println("Valores a actualizar:")
	for k, v := range updates {
		fmt.Printf("  %s: %v\n", k, v)
	}

	for _, module := range modules {
		moduleConfigPath := filepath.Join("..", module, "configs")
		fmt.Printf("\nProcesando módulo: %s (en %s)\n", module, moduleConfigPath)

		err := filepath.Walk(moduleConfigPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				fmt.Printf("  Error al acceder %s: %v\n", path, err)
				return nil
			}
			if info.IsDir() || filepath.Ext(path) != ".json" {
				return nil
			}

			modified, err := updateConfigFile(path, updates)
			switch {
			case err != nil:
				fmt.Printf("  %v\n", err)
			case modified:
				fmt.Printf("  El archivo %s ha sido actualizado correctamente.\n", path)
			default:
				fmt.Printf("  No se encontraron claves a actualizar en %s.\n", path)
			}
			return nil
		})

		if err != nil {
			fmt.Printf("Error al buscar archivos en la carpeta %s: %v\n", moduleConfigPath, err)
		}
	}

	fmt.Println("\nProceso de actualización de configuraciones finalizado.")
}

// parseUpdates arma el mapa clave -> valor. Los valores que son JSON válido (números, booleanos)
// conservan su tipo; el resto queda como string.
func parseUpdates(args []string) map[string]interface{} {
	updates := make(map[string]interface{})
	for i := 0; i+1 < len(args); i += 2 {
		var parsedValue interface{}
		if err := json.Unmarshal([]byte(args[i+1]), &parsedValue); err != nil {
			parsedValue = args[i+1]
		}
		updates[args[i]] = parsedValue
	}
	return updates
}

// updateConfigFile reemplaza en el archivo solo las claves que ya existen. Devuelve si lo modificó.
func updateConfigFile(path string, updates map[string]interface{}) (bool, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("error al leer el archivo %s: %w", path, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(fileContent, &data); err != nil {
		return false, fmt.Errorf("error al parsear JSON en el archivo %s: %w", path, err)
	}

	modified := false
	for updateKey, updateValue := range updates {
		if _, ok := data[updateKey]; ok {
			data[updateKey] = updateValue
			fmt.Printf("    Modificada '%s' en %s a '%v'\n", updateKey, path, updateValue)
			modified = true
		}
	}
	if !modified {
		return false, nil
	}

	newJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, fmt.Errorf("error al serializar JSON en el archivo %s: %w", path, err)
	}
	if err := os.WriteFile(path, newJSON, 0644); err != nil {
		return false, fmt.Errorf("error al escribir el archivo %s: %w", path, err)
	}
	return true, nil
}
