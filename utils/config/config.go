package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// InitConfig lee el archivo de configuración y retorna sus valores en la variable config. En caso de error no se crea el archivo
//
// Parámetros:
//   - filePath: ubicacion donde se encuentra el archivo de configuracion
//   - config: acepta cualquier tipo de estructura
//
// Ejemplo:
//
//	func main() {
//		config.InitConfig("memoria/configs/memoria.json", &models.MemoryConfig)
//	}
func InitConfig(filePath string, config interface{}) {
	err := setupConfig(filePath, config)
	if err != nil {
		panic(fmt.Errorf("error al configurar el archivo %s: %w", filePath, err))
	}
}

// LoadConfig es igual a InitConfig pero devuelve el error en lugar de finalizar con panic.
// Los campos que no aparecen en el archivo conservan el valor que ya tenía config.
func LoadConfig(filePath string, config interface{}) error {
	if err := setupConfig(filePath, config); err != nil {
		return fmt.Errorf("error al configurar el archivo %s: %w", filePath, err)
	}
	return nil
}

func setupConfig(filePath string, config interface{}) error {
	configFile, err := os.Open(filePath)

	if err != nil {
		return err
	}

	defer configFile.Close()

	jsonParser := json.NewDecoder(configFile)

	if err := jsonParser.Decode(config); err != nil {
		return err
	}

	return nil
}
