package models

// LoadRequest es el cuerpo de POST /memoria/load.
type LoadRequest struct {
	Address int `json:"address"`
}

// LoadResponse devuelve el byte leído como número (0-255).
type LoadResponse struct {
	Address int  `json:"address"`
	Value   byte `json:"value"`
}

// StoreRequest es el cuerpo de POST /memoria/store. Value es obligatorio y va como número (0-255).
type StoreRequest struct {
	Address int   `json:"address"`
	Value   *byte `json:"value"`
}

// StoreResponse confirma la escritura.
type StoreResponse struct {
	Address int  `json:"address"`
	Value   byte `json:"value"`
}
