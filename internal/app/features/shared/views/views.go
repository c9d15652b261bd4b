// internal/app/features/shared/views/views.go
package shared

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// FS holds the layout, navigation, alert and modal partials every page
// template builds on.
//
//go:embed templates/*.gohtml
var FS embed.FS

var registerOnce sync.Once

// Register adds the shared partials to the template registry. It must run
// before the engine boots; repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "shared",
			FS:       FS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}
