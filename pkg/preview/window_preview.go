//go:build preview

package preview

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/fathomrender/pathtracer/pkg/render"
)

func init() {
	runtime.LockOSThread()
}

const quadVertexShader = `
#version 410 core
layout (location = 0) in vec2 position;
layout (location = 1) in vec2 texCoord;
out vec2 uv;
void main() {
	uv = texCoord;
	gl_Position = vec4(position, 0.0, 1.0);
}
` + "\x00"

const quadFragmentShader = `
#version 410 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = vec4(texture(tex, uv).rgb, 1.0);
}
` + "\x00"

// quadVertices is a full-window two-triangle strip with UVs flipped
// vertically, since the framebuffer's display bytes are stored top
// row first while OpenGL texture space has v=0 at the bottom.
var quadVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, -1, 1, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

// Window is a live GLFW/OpenGL preview that blits the render's
// display buffer to a textured full-window quad on every Display
// call. Display must be called from the goroutine that created the
// Window, matching OpenGL's thread-affinity requirement for its
// context.
type Window struct {
	handle    *glfw.Window
	program   uint32
	vao       uint32
	vbo       uint32
	textureID uint32
	width     int
	height    int
}

// NewWindow opens a GLFW window with an OpenGL 4.1 core context sized
// width x height, ready to receive Display calls from a render.
func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("preview: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("preview: create window: %w", err)
	}
	handle.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		handle.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("preview: gl init: %w", err)
	}

	program, err := newProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		handle.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("preview: %w", err)
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	const stride = 4 * 4
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)

	return &Window{handle: handle, program: program, vao: vao, vbo: vbo, textureID: texID, width: width, height: height}, nil
}

// Display uploads the framebuffer's current display image as a
// texture and draws it full-screen, then polls window events.
func (w *Window) Display(fb *render.Framebuffer) {
	if w == nil || fb == nil || w.handle.ShouldClose() {
		return
	}
	pixels := fb.DisplayImage()

	gl.Viewport(0, 0, int32(w.width), int32(w.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(w.program)
	gl.BindTexture(gl.TEXTURE_2D, w.textureID)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGB,
		int32(fb.Width()), int32(fb.Height()), 0,
		gl.RGB, gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)

	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	w.handle.SwapBuffers()
	glfw.PollEvents()
}

// Closed reports whether the user has asked to close the preview
// window (e.g. clicked its close button).
func (w *Window) Closed() bool {
	return w == nil || w.handle.ShouldClose()
}

// Destroy tears down the window and terminates GLFW.
func (w *Window) Destroy() {
	if w == nil {
		return
	}
	gl.DeleteTextures(1, &w.textureID)
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.program)
	w.handle.Destroy()
	glfw.Terminate()
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		logMsg := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(logMsg))
		return 0, fmt.Errorf("link failed: %v", logMsg)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		logMsg := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(logMsg))
		return 0, fmt.Errorf("compile failed: %v", logMsg)
	}
	return shader, nil
}
