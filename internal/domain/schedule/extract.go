package schedule

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	leadingFenceRe  = regexp.MustCompile("^```[A-Za-z0-9_+-]*")
	trailingFenceRe = regexp.MustCompile("```$")
)

// Extract intenta recuperar un Result desde texto del modelo que debería ser
// JSON pero puede venir envuelto en code fences o comentarios. false si no
// hay un objeto con la key optimizedSchedule.
func Extract(text string) (Result, bool) {
	cleaned := stripFences(text)

	doc, ok := decodeDocument(cleaned)
	if !ok {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start {
			return Result{}, false
		}
		doc, ok = decodeDocument(cleaned[start : end+1])
		if !ok {
			return Result{}, false
		}
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return Result{}, false
	}
	// Validación laxa: la key tiene que existir con un valor "truthy"
	// (null, false, 0 y "" cuentan como ausente).
	if !truthy(obj["optimizedSchedule"]) {
		return Result{}, false
	}

	return project(obj), true
}

// truthy sigue la semántica de JSON suelto: arrays y objetos (aunque estén
// vacíos) cuentan como presentes.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(leadingFenceRe.ReplaceAllString(s, ""))
	s = strings.TrimSpace(trailingFenceRe.ReplaceAllString(s, ""))
	return s
}

func decodeDocument(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// project lleva el documento suelto a Result. Campos ausentes o de otro tipo
// quedan vacíos; un optimizedSchedule que no es array queda como schedule vacío.
func project(doc map[string]any) Result {
	res := Result{
		OptimizedSchedule: []Entry{},
		Precautions:       stringsOf(doc["precautions"]),
	}

	if items, ok := doc["optimizedSchedule"].([]any); ok {
		for _, it := range items {
			obj, ok := it.(map[string]any)
			if !ok {
				continue
			}
			e := Entry{Medicines: stringsOf(obj["medicines"])}
			e.Time, _ = obj["time"].(string)
			e.Notes, _ = obj["notes"].(string)
			res.OptimizedSchedule = append(res.OptimizedSchedule, e)
		}
	}

	if w, ok := doc["doctorWarning"].(string); ok && strings.TrimSpace(w) != "" {
		res.DoctorWarning = w
	} else {
		res.DoctorWarning = DefaultDoctorWarning
	}

	return res
}

// stringsOf devuelve los elementos string de v si v es un array; nunca nil.
func stringsOf(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
