// Package inputval validates decoded form structs with struct tags and
// turns failures into Portuguese messages for the UI.
//
//	type eventInput struct {
//		Title string `validate:"required,max=200" label:"Título"`
//		Date  string `validate:"required,isodate" label:"Data"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//		renderWithError(res.First())
//	}
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		must(v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		}))
		must(v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		}))
		must(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			return IsValidDate(fl.Field().String())
		}))
		must(v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsValidClock(fl.Field().String())
		}))
		must(v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
			return IsValidAmount(fl.Field().String())
		}))
		must(v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return IsValidRole(fl.Field().String())
		}))
	})
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate runs the struct's validate tags. Optional custom rules
// (isodate, hhmm, amount) accept empty strings; pair them with required
// when the field is mandatory.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: "Dados inválidos."})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " é obrigatório."
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres.", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s deve ter pelo menos %s caracteres.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s.", label, fe.Param())
	case "email":
		return "Informe um e-mail válido."
	case "eqfield":
		return "As senhas não coincidem."
	case "isodate":
		return label + " deve ser uma data válida."
	case "hhmm":
		return label + " deve estar no formato HH:MM."
	case "amount":
		return label + " deve ser um valor válido."
	case "oneof":
		return label + " tem um valor não permitido."
	case "objectid":
		return label + " não foi encontrado."
	case "role":
		return label + " contém um papel desconhecido."
	default:
		return label + " é inválido."
	}
}

// IsValidEmail accepts a bare addr-spec: no display name, no whitespace
// and no leading, trailing or doubled dots in either part.
func IsValidEmail(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return false
	}
	return cleanDots(local) && cleanDots(domain)
}

func cleanDots(s string) bool {
	return s != "" && !strings.HasPrefix(s, ".") && !strings.HasSuffix(s, ".") && !strings.Contains(s, "..")
}

// IsValidObjectID accepts 24 hex characters, surrounding space ignored.
// Empty input is invalid.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := primitive.ObjectIDFromHex(strings.ToLower(s))
	return err == nil
}

var roles = []string{"admin", "dirigente", "obreiro", "membro"}

// IsValidRole checks a role tag, ignoring case and space.
func IsValidRole(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range roles {
		if s == r {
			return true
		}
	}
	return false
}

// IsValidDate accepts "" or a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsValidClock accepts "" or a 24h HH:MM time.
func IsValidClock(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsValidAmount accepts "" or a finite non-negative money value in the
// formats normalize.Amount reads. Input made only of spaces is not empty.
func IsValidAmount(s string) bool {
	if s == "" {
		return true
	}
	v := normalize.Amount(s)
	return v != nil && *v >= 0
}
