// internal/app/features/congregations/types.go
package congregations

import (
	"time"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
)

type rowVM struct {
	ID          string
	Name        string
	Address     string
	City        string
	Contact     string
	Latitude    string
	Longitude   string
	HasLocation bool
	CreatedAt   time.Time
	CreatedText string
}

type listData struct {
	viewdata.BaseVM

	Rows      []rowVM
	Total     int
	LoadError bool
	Q         string
	CSVURL    string
	PDFURL    string

	MapLat float64
	MapLng float64

	Modal crudview.State
	Form  *formData
	View  *viewData
	Del   *deleteVM
}

type formData struct {
	formutil.Base

	ModalTitle string
	Action     string

	Name      string
	Address   string
	City      string
	Contact   string
	Latitude  string
	Longitude string
}

type viewData struct {
	rowVM
	ModalTitle string
	BackURL    string
}

type deleteVM struct {
	Action    string
	Label     string
	BackURL   string
	CSRFToken string
}

type congregationInput struct {
	Name      string `schema:"nome" validate:"required,max=200" label:"Nome"`
	Address   string `schema:"endereco" validate:"max=300" label:"Endereço"`
	City      string `schema:"cidade" validate:"max=120" label:"Cidade"`
	Contact   string `schema:"contato" validate:"max=120" label:"Contato"`
	Latitude  string `schema:"latitude"`
	Longitude string `schema:"longitude"`
}

// mapPoint is one marker of the congregations map.
type mapPoint struct {
	ID        string  `json:"id"`
	Name      string  `json:"nome"`
	Address   string  `json:"endereco,omitempty"`
	City      string  `json:"cidade,omitempty"`
	Contact   string  `json:"contato,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type mapCenter struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type mapResponse struct {
	Center        mapCenter  `json:"center"`
	Congregations []mapPoint `json:"congregacoes"`
}
