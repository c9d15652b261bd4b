// internal/app/features/users/types.go
package users

import (
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
)

type roleBadge struct {
	Tag   string
	Label string
	Color string
}

type rowVM struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Congregation string
	Roles        []roleBadge
	RoleTags     []string
	Ministries   int
	AuthMethod   string
	Disabled     bool
	Linked       bool // has a Firebase account
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type filterVM struct {
	Q      string
	Role   string
	Status string
	Active bool
}

type listData struct {
	viewdata.BaseVM

	Rows      []rowVM
	Total     int
	LoadError bool
	Filter    filterVM
	RoleOpts  []option

	Modal crudview.State
	Form  *formData
	View  *viewData
}

type formData struct {
	formutil.Base

	ModalTitle string
	Action     string

	Name   string
	Email  string
	IsSelf bool

	Roles         []option
	Ministries    []option
	Congregations []option
	Status        string
}

type viewData struct {
	rowVM
	ModalTitle string
	Ministries []string
	BackURL    string
}

type userInput struct {
	Roles          []string `schema:"roles" validate:"dive,role" label:"Papéis"`
	MinistryIDs    []string `schema:"ministerios" validate:"dive,objectid" label:"Ministérios"`
	CongregationID string   `schema:"congregacaoId" validate:"omitempty,objectid" label:"Congregação"`
	Status         string   `schema:"status" validate:"required,oneof=active disabled" label:"Situação"`
}
