package list

import (
	"fmt"
)

// List es la cola genérica que usan los módulos para encolar directivas de un script.
type List[T any] interface {
	Add(item T)          // Añadir un elemento al final de la lista
	Dequeue() (T, error) // Eliminar y devolver el primer elemento de la lista
	Size() int           // Retornar el tamaño de la lista
}

// ArrayList implementa List sobre un slice. No es seguro para uso concurrente: cada script se procesa
// en una sola goroutine.
type ArrayList[T any] struct {
	items []T
}

// Add inserta un elemento al final de la lista.
//
// Ejemplo:
//
//	func main() {
//		directives := &ArrayList[script.Directive]{}
//		directives.Add(script.Directive{Kind: script.Load, Address: 4})
//	}
func (list *ArrayList[T]) Add(item T) {
	list.items = append(list.items, item)
}

// Dequeue elimina y devuelve el primer elemento de la cola.
// En caso de que la lista se encuentre vacía retorna el valor "cero" del tipo T y un error.
func (list *ArrayList[T]) Dequeue() (T, error) {
	if len(list.items) == 0 {
		var zero T
		return zero, fmt.Errorf("list is empty")
	}
	value := list.items[0]
	list.items = list.items[1:]
	return value, nil
}

// Size devuelve el tamaño de la lista.
func (list *ArrayList[T]) Size() int {
	return len(list.items)
}
