package generation

import "context"

type OutcomeKind string

const (
	// Unconfigured: sin credencial. No es error, es el modo demo.
	Unconfigured     OutcomeKind = "unconfigured"
	Success          OutcomeKind = "success"
	QuotaExceeded    OutcomeKind = "quota_exceeded"
	UpstreamError    OutcomeKind = "upstream_error"
	TransportFailure OutcomeKind = "transport_failure"
)

// Outcome es el resultado clasificado de una llamada al generador.
type Outcome struct {
	Kind OutcomeKind

	// Text: payload textual crudo (sólo Success).
	Text string

	// Message: mensaje de error informado por upstream, puede venir vacío.
	Message string

	// Diagnostic: body de error decodificado, body crudo o texto del error de transporte.
	Diagnostic any
}

// Generator invoca el servicio externo de generación de texto.
// Una llamada saliente por invocación (cero si Unconfigured), sin reintentos.
type Generator interface {
	Generate(ctx context.Context, prompt string) Outcome
}
