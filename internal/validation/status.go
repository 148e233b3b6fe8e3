package validation

import "github.com/andescargo/manifiesto-backend/internal/domain"

type StatusSummary struct {
	Status     string `json:"valid_status"`
	CountError int    `json:"valid_count_error"`
	CountObs   int    `json:"valid_count_obs"`
}

// Aggregate reduce el snapshot de hallazgos a un estado unico. ERROR domina,
// luego OBS, de lo contrario OK. Nunca falla.
func Aggregate(findings []*domain.Validacion) StatusSummary {
	summary := StatusSummary{Status: domain.ValidOK}
	for _, f := range findings {
		if f == nil {
			continue
		}
		switch f.Severidad {
		case domain.SeveridadError:
			summary.CountError++
		case domain.SeveridadObs:
			summary.CountObs++
		}
	}
	if summary.CountError > 0 {
		summary.Status = domain.ValidError
	} else if summary.CountObs > 0 {
		summary.Status = domain.ValidOBS
	}
	return summary
}
