// internal/app/features/collections/types.go
package collections

import (
	"time"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
)

// rowVM is one collection as displayed.
type rowVM struct {
	ID        string
	Type      string
	TypeLabel string
	Date      time.Time
	DateText  string
	Event     string
	EventID   string

	ExpectedText  string
	CollectedText string
	AmountText    string // collected once received, expected otherwise
	Received      bool
	ReceivedText  string

	Status       status.CollectionStatus
	Notes        string
	NotesShort   string
	ReceiptNotes string
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type filterVM struct {
	Q      string
	From   string
	To     string
	Type   string
	Status string
	Event  string
	Active bool
}

// summaryVM is the current month card.
type summaryVM struct {
	Month         string
	Count         int
	TotalRecebido string
	TotalPendente string
}

type listData struct {
	viewdata.BaseVM

	Rows      []rowVM
	Total     int
	LoadError bool
	Filter    filterVM
	Summary   summaryVM
	CSVURL    string
	PDFURL    string

	Types    []option
	Statuses []option
	Events   []option

	Modal   crudview.State
	Form    *formData
	Receipt *receiptData
	View    *viewData
	Del     *deleteVM
}

// formData backs the create/edit modal.
type formData struct {
	formutil.Base

	ModalTitle string
	Action     string

	Type           string
	Date           string
	EventID        string
	ExpectedAmount string
	Notes          string

	Types  []option
	Events []option
}

// receiptData backs the receipt modal.
type receiptData struct {
	formutil.Base

	Action          string
	Label           string
	ExpectedText    string
	CollectedAmount string
	ReceiptNotes    string
}

type deleteVM struct {
	Action    string
	Label     string
	BackURL   string
	CSRFToken string
}

// collectionInput is the decoded create/edit form.
type collectionInput struct {
	Type           string `schema:"tipo" validate:"required,oneof=dizimo oferta especial outro" label:"Tipo"`
	Date           string `schema:"data" validate:"required,isodate" label:"Data"`
	EventID        string `schema:"eventoId" validate:"omitempty,objectid" label:"Evento"`
	ExpectedAmount string `schema:"valorPrevisto" validate:"amount" label:"Valor previsto"`
	Notes          string `schema:"observacoes" validate:"max=2000" label:"Observações"`
}

// receiptInput is the decoded receipt form.
type receiptInput struct {
	CollectedAmount string `schema:"valorRecebido" validate:"required,amount" label:"Valor recebido"`
	ReceiptNotes    string `schema:"observacoesRecebimento" validate:"max=2000" label:"Observações do recebimento"`
}
