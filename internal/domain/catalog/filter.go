package catalog

import "strings"

// Marcadores de especie en el texto libre del upstream.
const (
	kindMarkCat = "貓"
	kindMarkDog = "狗"
)

// Filter son los criterios de filtrado del catálogo.
// Campo vacío = no filtrar por ese criterio.
type Filter struct {
	Area string // substring sobre animal_place
	Kind Kind   // cat, dog, other
	Sex  Sex    // M, F, N
}

// IsZero indica que no hay ningún criterio activo.
func (f Filter) IsZero() bool {
	return f.Area == "" && f.Kind == "" && f.Sex == ""
}

// ParseSex acepta tanto el código upstream (M/F/N) como las formas
// legibles male/female/unknown. Devuelve "" si no reconoce el valor.
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return SexMale
	case "f", "female":
		return SexFemale
	case "n", "unknown":
		return SexUnknown
	default:
		return ""
	}
}

// ParseKind reconoce cat/dog/other. Devuelve "" si no matchea.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cat":
		return KindCat
	case "dog":
		return KindDog
	case "other":
		return KindOther
	default:
		return ""
	}
}

// KindOf clasifica el texto libre de especie del upstream.
func KindOf(rawKind string) Kind {
	switch {
	case strings.Contains(rawKind, kindMarkCat):
		return KindCat
	case strings.Contains(rawKind, kindMarkDog):
		return KindDog
	default:
		return KindOther
	}
}

// Apply filtra la lista sin mutarla. Con filtro vacío devuelve la misma slice.
func Apply(animals []Animal, f Filter) []Animal {
	if f.IsZero() {
		return animals
	}

	out := make([]Animal, 0, len(animals))
	for _, a := range animals {
		if f.Area != "" && !strings.Contains(a.Place, f.Area) {
			continue
		}
		if f.Kind != "" && KindOf(a.Kind) != f.Kind {
			continue
		}
		if f.Sex != "" && a.Sex != f.Sex {
			continue
		}
		out = append(out, a)
	}
	return out
}
