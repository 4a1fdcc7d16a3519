package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/cpu/models"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/script"
)

// ExecuteScript ejecuta las directivas load/store/print del script contra memory.
// Las líneas que no son directivas (por ejemplo la línea de inicialización de memoria) se ignoran y
// una directiva que falla se loguea sin cortar la ejecución.
func ExecuteScript(r io.Reader, out io.Writer, memory Memory) (models.ExecutionResult, error) {
	var result models.ExecutionResult

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		directive, ok, err := script.Parse(lineNumber, scanner.Text())
		if err != nil {
			var unknown *script.ErrUnknownDirective
			if !errors.As(err, &unknown) {
				slog.Warn(fmt.Sprintf("%v: %v", models.ErrInvalidInstruction, err))
			}
			result.Ignored++
			continue
		}
		if !ok {
			continue
		}

		if err := Execute(directive, out, memory); err != nil {
			slog.Warn("Falló la instrucción", "linea", directive.Line, "instruccion", directive.Kind.String(), "error", err)
			result.Failed++
			continue
		}
		result.Executed++
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}

	slog.Info("## Script finalizado", "ejecutadas", result.Executed, "fallidas", result.Failed, "ignoradas", result.Ignored)
	return result, nil
}

// Execute ejecuta una directiva y escribe su resultado en out.
func Execute(directive script.Directive, out io.Writer, memory Memory) error {
	switch directive.Kind {
	case script.Load:
		value, err := memory.Load(directive.Address)
		if err != nil {
			return err
		}
		slog.Debug(fmt.Sprintf("## Acción: LEER - Dirección: %d - Valor: %q", directive.Address, value))
		return script.WriteLoadResult(out, directive.Address, value)

	case script.Store:
		if err := memory.Store(directive.Address, directive.Value); err != nil {
			return err
		}
		slog.Debug(fmt.Sprintf("## Acción: ESCRIBIR - Dirección: %d - Valor: %q", directive.Address, directive.Value))
		return script.WriteStoreResult(out, directive.Address, directive.Value)

	case script.Print:
		return memory.Dump(out, directive.Target)

	default:
		return models.ErrInvalidInstruction
	}
}
