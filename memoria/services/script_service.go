package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/memoria/helpers"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/list"
	"github.com/sisoputnfrba/tp-vmem-Los-magiOS/utils/script"
)

// ScriptOptions configura la ejecución de un script.
type ScriptOptions struct {
	Simulator Options
	// DumpPath, si no está vacío, es el directorio donde además se guarda cada print en un archivo .dmp.
	DumpPath string
}

// RunScriptFile ejecuta el script ubicado en path.
func RunScriptFile(path string, out io.Writer, opts ScriptOptions) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: no se pudo abrir el script: %w", ErrIO, err)
	}
	defer file.Close()

	return RunScript(file, out, opts)
}

// NewFromScriptFile crea un simulador con la línea de inicialización del script ubicado en path e ignora
// el resto de las directivas. Lo usa el servidor HTTP.
func NewFromScriptFile(path string, opts Options) (*Simulator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo abrir el script: %w", ErrIO, err)
	}
	defer file.Close()

	initLine, _, err := scanInitLine(bufio.NewScanner(file))
	if err != nil {
		return nil, err
	}
	return New(initLine, opts)
}

// scanInitLine avanza hasta la primera línea no vacía y devuelve cuántas líneas consumió.
func scanInitLine(scanner *bufio.Scanner) (string, int, error) {
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if strings.TrimSpace(scanner.Text()) != "" {
			return scanner.Text(), lineNumber, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", lineNumber, fmt.Errorf("%w: error leyendo el script: %w", ErrIO, err)
	}
	return "", lineNumber, fmt.Errorf("%w: el script no tiene línea de inicialización", ErrConfig)
}

// RunScript inicializa un simulador con la primera línea no vacía y ejecuta el resto de las directivas.
// Los errores de una directiva se loguean y el script sigue; solo se devuelve error si no se pudo
// inicializar el simulador o leer el script.
func RunScript(r io.Reader, out io.Writer, opts ScriptOptions) error {
	logger := opts.Simulator.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scanner := bufio.NewScanner(r)
	initLine, lineNumber, err := scanInitLine(scanner)
	if err != nil {
		return err
	}

	sim, err := New(initLine, opts.Simulator)
	if err != nil {
		logger.Error("No se pudo inicializar el simulador", "linea", lineNumber, "error", err)
		return err
	}
	defer sim.Close()

	params := sim.Params()
	fmt.Fprintf(out, "Loaded program \"%s\" with text=%d, data=%d, bss=%d, heap_stack=%d.\n",
		params.ProgramPath, params.TextSize, params.DataSize, params.BssSize, params.HeapStackSize)

	var directives list.List[script.Directive] = &list.ArrayList[script.Directive]{}
	for scanner.Scan() {
		lineNumber++
		directive, ok, err := script.Parse(lineNumber, scanner.Text())
		if err != nil {
			var unknown *script.ErrUnknownDirective
			if errors.As(err, &unknown) {
				logger.Debug("Directiva ignorada", "linea", lineNumber, "comando", unknown.Command)
			} else {
				logger.Warn("Directiva inválida", "error", err)
			}
			continue
		}
		if ok {
			directives.Add(directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: error leyendo el script: %w", ErrIO, err)
	}

	for directives.Size() > 0 {
		directive, _ := directives.Dequeue()
		executeDirective(sim, directive, out, opts.DumpPath, logger)
	}

	return nil
}

func executeDirective(sim *Simulator, directive script.Directive, out io.Writer, dumpPath string, logger *slog.Logger) {
	switch directive.Kind {
	case script.Load:
		value, err := sim.Load(directive.Address)
		if err != nil {
			logger.Warn("Falló load", "linea", directive.Line, "direccion", directive.Address, "error", err)
			return
		}
		script.WriteLoadResult(out, directive.Address, value)

	case script.Store:
		if err := sim.Store(directive.Address, directive.Value); err != nil {
			logger.Warn("Falló store", "linea", directive.Line, "direccion", directive.Address, "error", err)
			return
		}
		script.WriteStoreResult(out, directive.Address, directive.Value)

	case script.Print:
		if err := sim.Dump(out, directive.Target); err != nil {
			logger.Warn("Falló print", "linea", directive.Line, "target", directive.Target, "error", err)
			return
		}
		if dumpPath != "" {
			if err := dumpToFile(sim, dumpPath, directive.Target, logger); err != nil {
				logger.Error("No se pudo guardar el dump", "target", directive.Target, "error", err)
			}
		}
	}
}

func dumpToFile(sim *Simulator, dir string, target string, logger *slog.Logger) error {
	file, err := helpers.CreateDumpFile(dir, target)
	if err != nil {
		return err
	}
	defer file.Close()

	logger.Info(fmt.Sprintf("## Dump de %s guardado en %s", target, file.Name()))
	return sim.Dump(file, target)
}
