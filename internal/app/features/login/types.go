// internal/app/features/login/types.go
package login

import (
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
)

type loginData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

type congregationOption struct {
	ID       string
	Name     string
	Selected bool
}

type signupData struct {
	viewdata.BaseVM
	Error         string
	Name          string
	Email         string
	Phone         string
	Congregations []congregationOption
	PasswordRules string
}

type resetRequestData struct {
	viewdata.BaseVM
	Error string
	Email string
	Sent  bool
}

type resetPasswordData struct {
	viewdata.BaseVM
	Error         string
	Token         string
	Email         string
	Invalid       bool
	PasswordRules string
}

type signupInput struct {
	Name           string `schema:"nome"`
	Email          string `schema:"email"`
	Phone          string `schema:"telefone"`
	CongregationID string `schema:"congregacao"`
	Password       string `schema:"senha"`
	Confirm        string `schema:"confirmacao"`
}
