package services

import "errors"

// Tipos de error del simulador. Se devuelven envueltos con fmt.Errorf("%w: ...") y se comparan con errors.Is.
var (
	ErrConfig            = errors.New("configuración inválida")
	ErrIO                = errors.New("error de entrada/salida")
	ErrAddressOutOfRange = errors.New("dirección fuera de rango")
	ErrWriteProtected    = errors.New("escritura en página de solo lectura")
	ErrSwapExhausted     = errors.New("swap lleno")
	ErrClosed            = errors.New("simulador cerrado")
)
