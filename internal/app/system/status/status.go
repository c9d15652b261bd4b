// Package status holds the closed vocabularies for record statuses and
// collection types, and their badge presentation.
package status

// Status is an event or record lifecycle status.
type Status string

const (
	Pendente   Status = "pendente"
	Realizado  Status = "realizado"
	Cancelado  Status = "cancelado"
	Ativo      Status = "ativo"
	Inativo    Status = "inativo"
	Confirmado Status = "confirmado"
	Aguardando Status = "aguardando"
	Concluido  Status = "concluido"
	Agendado   Status = "agendado"
)

// Neutral presentation for keys outside the vocabulary.
const (
	DefaultColor = "secondary"
	DefaultIcon  = "circle"
)

type badge struct {
	color string
	icon  string
	label string
}

var statuses = map[Status]badge{
	Pendente:   {"warning", "clock", "Pendente"},
	Realizado:  {"success", "check-circle", "Realizado"},
	Cancelado:  {"danger", "times-circle", "Cancelado"},
	Ativo:      {"success", "check-circle", "Ativo"},
	Inativo:    {"secondary", "circle", "Inativo"},
	Confirmado: {"success", "check-double", "Confirmado"},
	Aguardando: {"warning", "hourglass-half", "Aguardando"},
	Concluido:  {"success", "flag-checkered", "Concluído"},
	Agendado:   {"primary", "calendar", "Agendado"},
}

// Known reports whether s is part of the vocabulary.
func (s Status) Known() bool {
	_, ok := statuses[s]
	return ok
}

// Color returns the badge color, "secondary" for unknown keys.
func (s Status) Color() string {
	if b, ok := statuses[s]; ok {
		return b.color
	}
	return DefaultColor
}

// Icon returns the icon name, "circle" for unknown keys.
func (s Status) Icon() string {
	if b, ok := statuses[s]; ok {
		return b.icon
	}
	return DefaultIcon
}

// Label returns the display label; unknown keys are shown as-is.
func (s Status) Label() string {
	if b, ok := statuses[s]; ok {
		return b.label
	}
	return string(s)
}

// EventStatuses lists the statuses offered on the event form, default first.
func EventStatuses() []Status {
	return []Status{Agendado, Realizado, Cancelado}
}

// CollectionStatus is the receipt state of a collection record.
type CollectionStatus string

const (
	CollectionPending  CollectionStatus = "pendente"
	CollectionReceived CollectionStatus = "recebido"
)

var collectionStatuses = map[CollectionStatus]badge{
	CollectionPending:  {"warning", "clock", "Pendente"},
	CollectionReceived: {"success", "check-circle", "Recebido"},
}

func (s CollectionStatus) Known() bool {
	_, ok := collectionStatuses[s]
	return ok
}

func (s CollectionStatus) Color() string {
	if b, ok := collectionStatuses[s]; ok {
		return b.color
	}
	return DefaultColor
}

func (s CollectionStatus) Icon() string {
	if b, ok := collectionStatuses[s]; ok {
		return b.icon
	}
	return DefaultIcon
}

func (s CollectionStatus) Label() string {
	if b, ok := collectionStatuses[s]; ok {
		return b.label
	}
	return string(s)
}

// CollectionStatuses lists both receipt states for filters.
func CollectionStatuses() []CollectionStatus {
	return []CollectionStatus{CollectionPending, CollectionReceived}
}

// CollectionType is the kind of offering recorded.
type CollectionType string

const (
	Dizimo   CollectionType = "dizimo"
	Oferta   CollectionType = "oferta"
	Especial CollectionType = "especial"
	Outro    CollectionType = "outro"
)

var collectionTypes = map[CollectionType]string{
	Dizimo:   "Dízimo",
	Oferta:   "Oferta",
	Especial: "Especial",
	Outro:    "Outro",
}

func (t CollectionType) Known() bool {
	_, ok := collectionTypes[t]
	return ok
}

// Label returns the display name; unknown keys are shown as-is.
func (t CollectionType) Label() string {
	if l, ok := collectionTypes[t]; ok {
		return l
	}
	return string(t)
}

// CollectionTypes lists the types in form order.
func CollectionTypes() []CollectionType {
	return []CollectionType{Dizimo, Oferta, Especial, Outro}
}
