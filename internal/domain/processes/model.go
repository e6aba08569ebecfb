package processes

import "time"

// Modality define las modalidades de contratación soportadas.
// @Enum pregao, concorrencia, dispensa, inexigibilidade
type Modality string

const (
	ModalityPregao          Modality = "pregao"
	ModalityConcorrencia    Modality = "concorrencia"
	ModalityDispensa        Modality = "dispensa"
	ModalityInexigibilidade Modality = "inexigibilidade"
)

// Status define el estado del proceso en el flujo.
// @Enum draft, in_progress, suspended, closed
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusSuspended  Status = "suspended"
	StatusClosed     Status = "closed"
)

// Process representa un proceso de contratación pública registrado
// en el sistema. Es el contenedor al que se adjunta un timeline.
type Process struct {
	ID          string
	OwnerUserID string

	Code   string // número de expediente, ej "PE-2026/0142"
	Object string // objeto de la contratación

	Modality   Modality
	Status     Status
	Department string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
