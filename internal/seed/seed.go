package seed

import (
	"context"
	"time"

	"procurement-timeline/internal/domain/processes"
	"procurement-timeline/internal/domain/timeline"
)

// DemoProcessID es el id fijo del proceso de demostración, para que la
// UI de dev pueda armar links sin consultar antes.
const DemoProcessID = "demo-process"

// DemoEvents arma el dataset de demostración: un expediente típico de
// pregão con historial y plazos alrededor de "now", para que las vistas
// de urgencia muestren los tres estados sin tocar datos.
func DemoEvents(processID string, now time.Time) []timeline.TimelineEvent {
	iso := func(t time.Time) string { return t.Format(time.RFC3339) }

	return []timeline.TimelineEvent{
		{
			ID:         "demo-1",
			ProcessID:  processID,
			Title:      "DFD criado",
			Category:   timeline.CategoryVersion,
			OccurredAt: iso(now.AddDate(0, 0, -11)),
			Author:     timeline.Author{ID: "u-demo-1", Name: "Maria Souza", Role: "Demandante"},
			Openable:   true,
		},
		{
			ID:          "demo-2",
			ProcessID:   processID,
			Title:       "Documento anexado",
			Description: "Termo de referência v2 (PDF)",
			Category:    timeline.CategoryAttachment,
			Severity:    timeline.SeverityInfo,
			OccurredAt:  iso(now.AddDate(0, 0, -9)),
			Author:      timeline.Author{ID: "u-demo-1", Name: "Maria Souza", Role: "Demandante"},
			Openable:    true,
		},
		{
			ID:          "demo-3",
			ProcessID:   processID,
			Title:       "Comentário do setor jurídico",
			Description: "Ajustar cláusula de garantia antes do edital",
			Category:    timeline.CategoryComment,
			Severity:    timeline.SeverityWarning,
			OccurredAt:  iso(now.AddDate(0, 0, -7)),
			Author:      timeline.Author{ID: "u-demo-2", Name: "Carlos Lima", Role: "Assessor jurídico"},
			Openable:    true,
		},
		{
			ID:         "demo-4",
			ProcessID:  processID,
			Title:      "Etapa aprovada",
			Category:   timeline.CategoryAction,
			Severity:   timeline.SeveritySuccess,
			OccurredAt: iso(now.AddDate(0, 0, -6)),
			Author:     timeline.Author{ID: "u-demo-3", Name: "Ana Pereira", Role: "Autoridade competente"},
			Deadline:   timeline.Deadline{IsDeadline: true, DueAt: iso(now.AddDate(0, 0, -2))},
			Openable:   true,
		},
		{
			ID:         "demo-5",
			ProcessID:  processID,
			Title:      "Status alterado para em andamento",
			Category:   timeline.CategoryStatus,
			OccurredAt: iso(now.AddDate(0, 0, -5)),
			Openable:   true,
		},
		{
			ID:          "demo-6",
			ProcessID:   processID,
			Title:       "Resposta ao questionamento",
			Description: "Prazo legal de resposta ao fornecedor",
			Category:    timeline.CategoryAction,
			Severity:    timeline.SeverityDanger,
			OccurredAt:  iso(now.AddDate(0, 0, -1)),
			Author:      timeline.Author{ID: "u-demo-3", Name: "Ana Pereira", Role: "Pregoeira"},
			Deadline:    timeline.Deadline{IsDeadline: true, DueAt: iso(now)},
			Openable:    true,
		},
		{
			ID:         "demo-7",
			ProcessID:  processID,
			Title:      "Sessão pública agendada",
			Category:   timeline.CategorySystem,
			OccurredAt: iso(now.AddDate(0, 0, -1)),
			Deadline:   timeline.Deadline{IsDeadline: true, DueAt: iso(now.AddDate(0, 0, 5))},
			Openable:   false,
		},
	}
}

// Demo siembra el proceso de demostración y su timeline en los repos
// (pensado para los repos in-memory en modo demo). Idempotente mientras
// los repos arranquen vacíos.
func Demo(ctx context.Context, procRepo processes.Repository, tlRepo timeline.Repository, now time.Time) error {
	p := processes.Process{
		ID:          DemoProcessID,
		OwnerUserID: "demo-user",
		Code:        "PE-2026/0142",
		Object:      "Aquisição de material de informática",
		Modality:    processes.ModalityPregao,
		Status:      processes.StatusInProgress,
		Department:  "Secretaria de Administração",
		CreatedAt:   now.AddDate(0, 0, -12),
		UpdatedAt:   now,
	}
	if err := procRepo.Create(ctx, p); err != nil {
		return err
	}

	for _, e := range DemoEvents(DemoProcessID, now) {
		if err := tlRepo.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
