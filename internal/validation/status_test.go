package validation

import (
	"testing"

	"github.com/andescargo/manifiesto-backend/internal/domain"
)

func TestAggregateEmptyIsOK(t *testing.T) {
	summary := Aggregate(nil)
	if summary.Status != domain.ValidOK || summary.CountError != 0 || summary.CountObs != 0 {
		t.Fatalf("got %+v", summary)
	}
}

func TestAggregateObsOnly(t *testing.T) {
	summary := Aggregate([]*domain.Validacion{
		{Severidad: domain.SeveridadObs},
		{Severidad: domain.SeveridadObs},
	})
	if summary.Status != domain.ValidOBS || summary.CountObs != 2 || summary.CountError != 0 {
		t.Fatalf("got %+v", summary)
	}
}

func TestAggregateErrorDominates(t *testing.T) {
	summary := Aggregate([]*domain.Validacion{
		{Severidad: domain.SeveridadObs},
		{Severidad: domain.SeveridadError},
		{Severidad: domain.SeveridadObs},
	})
	if summary.Status != domain.ValidError || summary.CountError != 1 || summary.CountObs != 2 {
		t.Fatalf("got %+v", summary)
	}
}
