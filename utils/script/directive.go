package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind es el tipo de directiva de un script de memoria virtual.
type Kind int

const (
	Load Kind = iota
	Store
	Print
)

func (k Kind) String() string {
	switch k {
	case Load:
		return "load"
	case Store:
		return "store"
	default:
		return "print"
	}
}

// Targets válidos para print.
const (
	TargetRam   = "ram"
	TargetSwap  = "swap"
	TargetTable = "table"
	TargetTlb   = "tlb"
)

// Directive es una línea ya parseada del script.
type Directive struct {
	Line    int
	Kind    Kind
	Address int
	Value   byte
	Target  string
}

// ErrUnknownDirective se devuelve para comandos que no son load/store/print.
type ErrUnknownDirective struct {
	Command string
}

func (e *ErrUnknownDirective) Error() string {
	return fmt.Sprintf("directiva desconocida: %s", e.Command)
}

// Parse interpreta una línea de directiva. Devuelve ok=false para líneas vacías.
//
//	load <address>
//	store <address> <byte>   (se toma el primer caracter del tercer campo)
//	print ram|swap|table|tlb
func Parse(lineNumber int, line string) (Directive, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Directive{}, false, nil
	}

	directive := Directive{Line: lineNumber}

	switch fields[0] {
	case "load":
		if len(fields) < 2 {
			return directive, true, fmt.Errorf("línea %d: load requiere una dirección", lineNumber)
		}
		address, err := strconv.Atoi(fields[1])
		if err != nil {
			return directive, true, fmt.Errorf("línea %d: dirección inválida %q", lineNumber, fields[1])
		}
		directive.Kind = Load
		directive.Address = address

	case "store":
		if len(fields) < 3 {
			return directive, true, fmt.Errorf("línea %d: store requiere dirección y valor", lineNumber)
		}
		address, err := strconv.Atoi(fields[1])
		if err != nil {
			return directive, true, fmt.Errorf("línea %d: dirección inválida %q", lineNumber, fields[1])
		}
		directive.Kind = Store
		directive.Address = address
		directive.Value = fields[2][0]

	case "print":
		if len(fields) < 2 {
			return directive, true, fmt.Errorf("línea %d: print requiere un destino", lineNumber)
		}
		switch fields[1] {
		case TargetRam, TargetSwap, TargetTable, TargetTlb:
		default:
			return directive, true, fmt.Errorf("línea %d: destino de print inválido %q", lineNumber, fields[1])
		}
		directive.Kind = Print
		directive.Target = fields[1]

	default:
		return directive, true, &ErrUnknownDirective{Command: fields[0]}
	}

	return directive, true, nil
}
