package timeline

import (
	"strings"
	"time"
)

// Formatos aceptados, en orden de intento. Primero ISO-8601 (timestamps
// generados por el sistema), después dd/mm/yyyy con hora opcional
// (fechas tipeadas por el usuario en el formulario de creación).
// Los formatos sin zona se interpretan como hora local.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseWhen convierte un timestamp textual en un instante.
// Devuelve (zero, false) si no parsea; nunca adivina otros formatos
// y nunca lanza panic. Es el único punto de verdad de "qué hora es
// este evento": todo el resto del paquete pasa por acá.
func ParseWhen(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// DayKey devuelve la clave de día local YYYY-MM-DD de un instante.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// StartOfDay trunca un instante a la medianoche local.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// SameLocalDay compara dos instantes por día de calendario local,
// no por instante crudo.
func SameLocalDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
