package script

import (
	"fmt"
	"io"
)

// WriteLoadResult escribe "Value at address N = c". El valor se escribe como byte crudo, sin
// convertirlo a UTF-8, igual que el resto de los volcados.
func WriteLoadResult(w io.Writer, address int, value byte) error {
	if _, err := fmt.Fprintf(w, "Value at address %d = ", address); err != nil {
		return err
	}
	_, err := w.Write([]byte{value, '\n'})
	return err
}

// WriteStoreResult escribe "Stored value 'c' at address N" con el byte crudo.
func WriteStoreResult(w io.Writer, address int, value byte) error {
	if _, err := w.Write(append([]byte("Stored value '"), value, '\'')); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, " at address %d\n", address)
	return err
}
