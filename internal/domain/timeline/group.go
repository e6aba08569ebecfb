package timeline

import "sort"

// GroupByDay agrupa apariciones por día local. Las apariciones cuyo
// timestamp no parseó quedan afuera (se descartan, no van a una clave
// centinela: timestamps rotos nunca deben colapsar en un mismo bucket).
// Dentro de cada bucket el orden es ascendente por instante de display.
func GroupByDay(occs []Occurrence) map[string][]Occurrence {
	buckets := make(map[string][]Occurrence)
	for _, o := range occs {
		if !o.ParsedOK {
			continue
		}
		k := DayKey(o.At)
		buckets[k] = append(buckets[k], o)
	}

	for k := range buckets {
		b := buckets[k]
		sort.SliceStable(b, func(i, j int) bool {
			return b[i].At.Before(b[j].At)
		})
	}

	return buckets
}

// SortedBuckets devuelve los buckets como lista, con las claves de día
// descendente (día más reciente primero). La asimetría es deliberada:
// el día nuevo arriba, pero los eventos de ese día en orden cronológico.
func SortedBuckets(buckets map[string][]Occurrence) []DayBucket {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// Las claves YYYY-MM-DD ordenan lexicográficamente igual que cronológicamente.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	out := make([]DayBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, DayBucket{Key: k, Occurrences: buckets[k]})
	}
	return out
}

// DayOccurrences devuelve las apariciones de un día puntual (vista de
// "día seleccionado"), ya ordenadas ascendente. Día sin apariciones
// devuelve lista vacía, que es un estado válido, no un error.
func DayOccurrences(occs []Occurrence, key string) []Occurrence {
	buckets := GroupByDay(occs)
	if b, ok := buckets[key]; ok {
		return b
	}
	return []Occurrence{}
}
