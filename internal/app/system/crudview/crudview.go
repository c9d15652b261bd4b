// Package crudview models the modal state of an entity list page.
//
// A page has a single modal slot. Opening an action binds at most one
// target; opening another replaces it. The state lives in the view model
// of one entity page and is never shared between entities.
package crudview

// Mode is what the modal slot is showing.
type Mode int

const (
	Closed Mode = iota
	Create
	Edit
	View
	ConfirmDelete
)

func (m Mode) String() string {
	switch m {
	case Create:
		return "create"
	case Edit:
		return "edit"
	case View:
		return "view"
	case ConfirmDelete:
		return "delete"
	default:
		return "closed"
	}
}

// State is the modal slot of one entity page.
type State struct {
	Base     string // list URL, e.g. "/eventos"
	Mode     Mode
	TargetID string
}

// New returns a closed state for the list at base.
func New(base string) State {
	return State{Base: base}
}

// Open replaces the slot contents with mode bound to id. Create never
// binds a target.
func (s State) Open(mode Mode, id string) State {
	if mode == Create || mode == Closed {
		id = ""
	}
	return State{Base: s.Base, Mode: mode, TargetID: id}
}

// Close empties the slot.
func (s State) Close() State {
	return State{Base: s.Base}
}

// IsOpen reports whether a modal is showing.
func (s State) IsOpen() bool { return s.Mode != Closed }

// IsCreate reports whether the slot holds the create form.
func (s State) IsCreate() bool { return s.Mode == Create }

// IsEdit reports whether the slot holds the edit form.
func (s State) IsEdit() bool { return s.Mode == Edit }

// FormAction is the URL the shared create/edit form posts to.
func (s State) FormAction() string {
	switch s.Mode {
	case Edit:
		return s.Base + "/" + s.TargetID + "/edit"
	case ConfirmDelete:
		return s.Base + "/" + s.TargetID + "/delete"
	default:
		return s.Base + "/new"
	}
}

// Title builds the modal heading from the entity's singular label,
// agreeing in gender with it.
func (s State) Title(singular string, feminine bool) string {
	novo, do := "Novo ", "Detalhes do "
	if feminine {
		novo, do = "Nova ", "Detalhes da "
	}
	switch s.Mode {
	case Create:
		return novo + singular
	case Edit:
		return "Editar " + singular
	case View:
		return do + singular
	case ConfirmDelete:
		return "Confirmar Exclusão"
	default:
		return ""
	}
}
