package schedule

// Entry es un horario del día con las medicinas agrupadas.
type Entry struct {
	Time      string   `json:"time"` // HH:MM 24h
	Medicines []string `json:"medicines"`
	Notes     string   `json:"notes,omitempty"`
}

// Result es lo que ve el paciente. DoctorWarning nunca está vacío y también
// sirve de canal de error: los caminos degradados se comunican por ahí.
// Raw sólo viaja en caminos degradados (diagnóstico, nadie lo consume).
type Result struct {
	OptimizedSchedule []Entry  `json:"optimizedSchedule"`
	Precautions       []string `json:"precautions"`
	DoctorWarning     string   `json:"doctorWarning"`
	Raw               any      `json:"raw,omitempty"`
}

// Profile es la vista del paciente que necesita el prompt.
type Profile struct {
	Name       string
	Age        int
	Conditions []string
}

// MedicineRecord es la vista de una toma que necesita el prompt.
type MedicineRecord struct {
	Name     string
	Dosage   string
	Time     string
	Duration string
}

const (
	DemoWarning = "This is an AI-generated example schedule. Always confirm with your doctor."

	QuotaNotice = "Live AI calls are temporarily disabled because the API quota was exceeded."

	UpstreamFallbackWarning = "AI could not generate a schedule. Please consult your doctor before making any changes."

	ParseFailureWarning = "AI response parsing failed. Please consult your doctor before changes."

	// DefaultDoctorWarning se usa cuando el modelo devuelve un schedule sin advertencia.
	DefaultDoctorWarning = "Always confirm this schedule with your doctor before making any changes."
)

// DemoSchedule es el schedule fijo que se muestra cuando no hay generación en vivo.
func DemoSchedule() Result {
	return demoSchedule("")
}

func demoSchedule(extraWarning string) Result {
	warning := DemoWarning
	if extraWarning != "" {
		warning += " " + extraWarning
	}
	return Result{
		OptimizedSchedule: []Entry{
			{
				Time:      "08:00",
				Medicines: []string{"Blood pressure pill 10mg"},
				Notes:     "Take with water after breakfast",
			},
			{
				Time:      "20:00",
				Medicines: []string{"Cholesterol pill 20mg"},
				Notes:     "Avoid grapefruit juice",
			},
		},
		Precautions: []string{
			"Stand up slowly to avoid dizziness",
			"Avoid alcohol unless doctor allows",
		},
		DoctorWarning: warning,
	}
}
