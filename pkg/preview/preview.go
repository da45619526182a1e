// Package preview provides render.DisplaySink implementations: a
// no-op sink for headless runs, and (behind the "preview" build tag)
// a live GLFW/OpenGL window that blits the framebuffer as it fills
// in. The renderer core never imports glfw or gl directly -- only
// this package does, and only when built with the tag.
package preview

import "github.com/fathomrender/pathtracer/pkg/render"

// NullSink drops every Display call. It is the default sink for
// batch/headless renders.
type NullSink struct{}

func (NullSink) Display(*render.Framebuffer) {}
