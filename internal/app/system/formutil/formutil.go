// Package formutil decodes posted forms and carries validation errors back
// into the re-rendered form.
//
//	type eventFormData struct {
//		formutil.Base
//		Input eventInput
//	}
//
//	var in eventInput
//	if err := formutil.Decode(&in, r); err != nil { ... }
//	if res := inputval.Validate(in); res.HasErrors() {
//		data := eventFormData{Input: in}
//		formutil.SetBase(&data.Base, r, "Novo Evento", "/eventos")
//		data.SetResult(res)
//		templates.RenderSnippet(w, "event_form", data)
//	}
package formutil

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/gorilla/schema"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base is embedded in form view models.
type Base struct {
	viewdata.BaseVM
	Error       template.HTML
	FieldErrors map[string]string
}

// SetBase fills the layout fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the form-level error message.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetResult copies validation failures into the form: the first message
// becomes the form error and every failure is kept per field.
func (b *Base) SetResult(res *inputval.Result) {
	if res == nil || !res.HasErrors() {
		return
	}
	b.SetError(res.First())
	b.FieldErrors = make(map[string]string, len(res.Errors))
	for _, fe := range res.Errors {
		if _, seen := b.FieldErrors[fe.Field]; !seen {
			b.FieldErrors[fe.Field] = fe.Message
		}
	}
}

// FieldError returns the message for field, or "".
func (b *Base) FieldError(field string) string {
	return b.FieldErrors[field]
}

var (
	decoderOnce sync.Once
	decoder     *schema.Decoder
)

func formDecoder() *schema.Decoder {
	decoderOnce.Do(func() {
		decoder = schema.NewDecoder()
		decoder.IgnoreUnknownKeys(true)
		decoder.ZeroEmpty(true)
	})
	return decoder
}

// Decode parses the request form into dst using `schema` struct tags.
// Unknown keys such as gorilla.csrf.Token are ignored.
func Decode(dst any, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return formDecoder().Decode(dst, r.PostForm)
}

// OptionalID parses a reference select value. Empty, "todos" or malformed
// values yield nil.
func OptionalID(s string) *primitive.ObjectID {
	s = normalize.RefID(s)
	if s == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil
	}
	return &id
}

// ObjectIDs parses a multi-select, skipping blanks, malformed values and
// repeats.
func ObjectIDs(in []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(in))
	seen := make(map[primitive.ObjectID]bool, len(in))
	for _, s := range in {
		id := OptionalID(s)
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		out = append(out, *id)
	}
	return out
}
