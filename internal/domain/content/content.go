// Package content contiene el catálogo cerrado de plantillas de texto: captions para redes
// sociales y mensajes de negocio. Todas las funciones son puras y deterministas.
package content

import (
	"fmt"
	"strings"
)

// ValidationError faltan campos obligatorios; no se genera texto.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// UnknownVariantError clave fuera del catálogo (plataforma, tipo, tono...).
type UnknownVariantError struct {
	Kind  string
	Value string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
