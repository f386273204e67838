package schedule

import (
	"fmt"
	"strings"
)

const noMedicinesLine = "No current medicines."

const taskInstructions = `TASK:
Create an easy daily schedule for an elderly patient.
Spread medicines logically through the day when generally safe.
Suggest simple precautions.
Always include a doctor confirmation warning.

Return ONLY JSON in this structure:

{
  "optimizedSchedule": [
    { "time": "HH:MM", "medicines": ["name"], "notes": "short note" }
  ],
  "precautions": ["precaution 1", "precaution 2"],
  "doctorWarning": "warning text"
}
`

// RenderPrompt arma el prompt para el generador. Es determinístico: mismo
// input, mismo texto. Las medicinas se listan en el orden recibido.
func RenderPrompt(p Profile, meds []MedicineRecord) string {
	conditions := strings.Join(p.Conditions, ", ")
	if conditions == "" {
		conditions = "None"
	}

	var b strings.Builder
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Age: %d\n", p.Age)
	fmt.Fprintf(&b, "Conditions: %s\n", conditions)
	b.WriteString("\nCurrent medicines:\n")

	if len(meds) == 0 {
		b.WriteString(noMedicinesLine)
	} else {
		lines := make([]string, 0, len(meds))
		for _, m := range meds {
			lines = append(lines, RenderMedicineLine(m))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(taskInstructions)
	return b.String()
}

// RenderMedicineLine: "<name> | dosage: <dosage> | time: <time> | duration: <duration>".
func RenderMedicineLine(m MedicineRecord) string {
	return fmt.Sprintf("%s | dosage: %s | time: %s | duration: %s", m.Name, m.Dosage, m.Time, m.Duration)
}
