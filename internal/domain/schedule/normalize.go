package schedule

import (
	"strings"

	"medicine-reminder/internal/ports/generation"
)

// Labels de resultado para logs y métricas.
const (
	OutcomeSuccess          = "success"
	OutcomeUnconfigured     = "unconfigured"
	OutcomeQuotaExceeded    = "quota_exceeded"
	OutcomeUpstreamError    = "upstream_error"
	OutcomeTransportFailure = "transport_failure"
	OutcomeParseFailure     = "parse_failure"
	OutcomeCached           = "cached"
)

// Normalize convierte cualquier Outcome en un Result válido. Nunca falla.
func Normalize(o generation.Outcome) Result {
	res, _ := normalize(o)
	return res
}

func normalize(o generation.Outcome) (Result, string) {
	switch o.Kind {
	case generation.Unconfigured:
		return DemoSchedule(), OutcomeUnconfigured

	case generation.QuotaExceeded:
		res := demoSchedule(QuotaNotice)
		res.Raw = diagnostic(o)
		return res, OutcomeQuotaExceeded

	case generation.Success:
		if res, ok := Extract(o.Text); ok {
			return res, OutcomeSuccess
		}
		return emptyResult(ParseFailureWarning, o.Text), OutcomeParseFailure

	case generation.TransportFailure:
		return upstreamFallback(o), OutcomeTransportFailure

	default:
		return upstreamFallback(o), OutcomeUpstreamError
	}
}

func upstreamFallback(o generation.Outcome) Result {
	warning := UpstreamFallbackWarning
	if strings.TrimSpace(o.Message) != "" {
		warning = o.Message
	}
	return emptyResult(warning, diagnostic(o))
}

func emptyResult(warning string, raw any) Result {
	return Result{
		OptimizedSchedule: []Entry{},
		Precautions:       []string{},
		DoctorWarning:     warning,
		Raw:               raw,
	}
}

// diagnostic garantiza que raw esté presente aunque upstream no haya dado nada.
func diagnostic(o generation.Outcome) any {
	if o.Diagnostic != nil {
		return o.Diagnostic
	}
	if o.Message != "" {
		return o.Message
	}
	return string(o.Kind)
}
