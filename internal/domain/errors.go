package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrMalformedInput        = errors.New("archivo de entrada malformado")
	ErrPreconditionViolation = errors.New("precondición violada")
)

// MalformedInputError describe un CSV que no se puede interpretar: columna requerida ausente,
// celda no numérica o estructura rota. Siempre nombra el archivo ofensor.
type MalformedInputError struct {
	File   string // nombre lógico o de archivo ("inventory file", "stock.csv")
	Column string // columna afectada; vacío si el problema es estructural
	Row    int    // fila 1-based de datos (sin contar el header); 0 si aplica al archivo completo
	Reason string
}

func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Row > 0 {
		fmt.Fprintf(&b, ", fila %d", e.Row)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Column != "" && !strings.Contains(e.Reason, e.Column) {
		fmt.Fprintf(&b, " (columna %s)", e.Column)
	}
	return b.String()
}

// Unwrap permite errors.Is(err, ErrMalformedInput).
func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// NewMissingColumnError construye el error para una columna requerida ausente.
func NewMissingColumnError(file, column string) *MalformedInputError {
	return &MalformedInputError{File: file, Column: column, Reason: "missing " + column + " column"}
}
