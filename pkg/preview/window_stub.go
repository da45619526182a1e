//go:build !preview

package preview

import (
	"fmt"

	"github.com/fathomrender/pathtracer/pkg/render"
)

// Window is the disabled stand-in used when the binary is built
// without the "preview" build tag.
type Window struct{}

// NewWindow always fails: this binary was built without glfw/gl
// support. Rebuild with -tags preview to enable the live window.
func NewWindow(width, height int, title string) (*Window, error) {
	return nil, fmt.Errorf("preview: built without preview support (rebuild with -tags preview)")
}

func (w *Window) Display(*render.Framebuffer) {}
func (w *Window) Closed() bool                { return true }
func (w *Window) Destroy()                    {}
