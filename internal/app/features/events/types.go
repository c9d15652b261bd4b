// internal/app/features/events/types.go
package events

import (
	"time"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
)

// rowVM is one event as displayed in the table and the view modal.
type rowVM struct {
	ID           string
	Title        string
	Date         time.Time
	DateText     string
	Time         string
	Congregation string
	Ministry     string
	Status       status.Status
	Notes        string
	NotesShort   string

	CongregationID string
	MinistryID     string
}

// option is an id/label pair for select inputs.
type option struct {
	Value    string
	Label    string
	Selected bool
}

// filterVM echoes the active filters back into the form.
type filterVM struct {
	Q            string
	From         string
	To           string
	Status       string
	Ministry     string
	Congregation string
	Active       bool
}

// listData is the view model for the events page.
type listData struct {
	viewdata.BaseVM

	Rows      []rowVM
	Total     int
	CSVURL    string
	PDFURL    string
	LoadError bool
	Filter    filterVM

	Statuses      []option
	Ministries    []option
	Congregations []option

	Modal crudview.State
	Form  *formData
	View  *viewVM
	Del   *deleteVM
}

// formData backs the shared create/edit modal.
type formData struct {
	formutil.Base

	ModalTitle string
	Action     string

	EventTitle     string
	Date           string
	Time           string
	CongregationID string
	MinistryID     string
	Status         string
	Notes          string

	Statuses      []option
	Congregations []option
	Ministries    []option
	Participants  []option
}

// viewVM is the read-only details modal.
type viewVM struct {
	rowVM
	ModalTitle   string
	Participants []string
	BackURL      string
}

type deleteVM struct {
	Action    string
	Label     string
	BackURL   string
	CSRFToken string
}

// eventInput is the decoded create/edit form.
type eventInput struct {
	Title          string   `schema:"titulo" validate:"required,max=200" label:"Título"`
	Date           string   `schema:"data" validate:"required,isodate" label:"Data"`
	Time           string   `schema:"hora" validate:"hhmm" label:"Hora"`
	CongregationID string   `schema:"congregacaoId" validate:"omitempty,objectid" label:"Congregação"`
	MinistryID     string   `schema:"ministerioId" validate:"omitempty,objectid" label:"Ministério"`
	Status         string   `schema:"status" validate:"omitempty,oneof=agendado realizado cancelado" label:"Status"`
	Notes          string   `schema:"observacoes" validate:"max=2000" label:"Observações"`
	Participants   []string `schema:"participantes" validate:"dive,objectid" label:"Participantes"`
}
