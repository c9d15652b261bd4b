// internal/app/features/ministries/types.go
package ministries

import (
	"time"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
)

type rowVM struct {
	ID               string
	Name             string
	Description      string
	DescriptionShort string
	Responsible      string
	MemberCount      int
	CreatedAt        time.Time
	CreatedText      string
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type listData struct {
	viewdata.BaseVM

	Rows      []rowVM
	Total     int
	LoadError bool
	Q         string
	CSVURL    string
	PDFURL    string

	Modal crudview.State
	Form  *formData
	View  *viewData
	Del   *deleteVM
}

type formData struct {
	formutil.Base

	ModalTitle string
	Action     string

	Name          string
	Description   string
	ResponsibleID string

	Users   []option // responsible select
	Members []option // multi-select
}

type viewData struct {
	rowVM
	ModalTitle string
	Members    []string
	BackURL    string
}

type deleteVM struct {
	Action    string
	Label     string
	BackURL   string
	CSRFToken string
}

type ministryInput struct {
	Name          string   `schema:"nome" validate:"required,max=200" label:"Nome"`
	Description   string   `schema:"descricao" validate:"max=2000" label:"Descrição"`
	ResponsibleID string   `schema:"responsavelUid" validate:"omitempty,objectid" label:"Responsável"`
	Members       []string `schema:"membros" validate:"dive,objectid" label:"Membros"`
}
