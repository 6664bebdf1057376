//go:build !nogl

package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/PrincetonUniversity/nissen"
)

// Run runs an interactive simulation in an OpenGL window.
func Run(t *nissen.Tissue, conf *Config) error {
	log := conf.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	const (
		title  = "Nissen"
		width  = 800
		height = 800
	)
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return err
	}
	w.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}

	// set background color and enable alpha blending
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	w.SwapBuffers()

	// initialize OpenGL objects
	d, err := newDisplay(conf.MaxCells)
	if err != nil {
		return err
	}

	forces := func() []vertex {
		if conf.Forces == nil {
			return nil
		}
		return forceVertices(t, conf.Forces(), conf.ForceScale)
	}

	// handle scrolling zoom
	vp := newViewport(conf)
	focal := -1 // index of the highlighted cell
	w.SetScrollCallback(func(w *glfw.Window, xo, yo float64) {
		xc, yc := w.GetCursorPos()
		xs, ys := w.GetSize()
		x, y := float32(xc)/float32(xs), (float32(ys)-float32(yc))/float32(ys)
		vp.zoom(x, y, 0.05*float32(yo))
		d.draw(t, focal, forces(), vp)
		w.SwapBuffers()
	})

	var quit, step bool
	pause := conf.ForcePause
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mod glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			quit = true
		}
		if key == glfw.KeySpace && action == glfw.Press && !conf.ForcePause {
			pause = !pause
		}
		if key == glfw.KeyRight && (action == glfw.Press || action == glfw.Repeat) {
			if pause {
				pause = false
				step = true
			}
		}
		if key == glfw.KeyTab && action == glfw.Press {
			// cycle through cells, then disable (focal = -1)
			dir := 1
			if mod == glfw.ModShift {
				dir = -1
			}
			focal = cycle(focal, dir, t.Len())
			if focal >= 0 {
				c := t.Cells[focal]
				log.Info("focal cell",
					zap.Int("index", focal),
					zap.Stringer("type", c.Type),
					zap.Float64("x", c.Pos.X),
					zap.Float64("y", c.Pos.Y),
					zap.Bool("polar", c.Polar),
					zap.Float64("angle", c.Angle),
				)
			}
		}
		if key == glfw.KeyR && action == glfw.Press {
			vp = newViewport(conf)
			d.draw(t, focal, forces(), vp)
			w.SwapBuffers()
		}
	})

	for !(quit || w.ShouldClose()) {
		if step {
			pause = true
			step = false
			if err := conf.Step(); err != nil {
				return err
			}
		}
		if !pause {
			if err := conf.Step(); err != nil {
				return err
			}
		}
		d.draw(t, focal, forces(), vp)
		w.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// A program is a linked shader program and the location of its viewport uniform.
type program struct {
	id uint32
	vp int32
}

// display contains all the OpenGL objects required to display the simulation.
type display struct {
	prog struct {
		cell program // discs, expanded from points
		line program // polarity axes and forces
	}
	vao struct {
		cell uint32
		line uint32
	}
	buf struct {
		cell uint32 // one vertex per cell
		line uint32 // two vertices per axis or force
	}
	maxLines int // capacity of the line buffer in vertices
}

// draw updates the OpenGL buffers and draws the cells on screen.
func (d *display) draw(t *nissen.Tissue, focal int, forces []vertex, vp viewport) {
	d.updateViewport(vp)
	cells := cellVertices(t, focal)
	lines := append(axisVertices(t), forces...)
	if len(lines) > d.maxLines {
		lines = lines[:d.maxLines]
	}
	upload(d.buf.cell, cells)
	upload(d.buf.line, lines)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(d.prog.cell.id)
	gl.BindVertexArray(d.vao.cell)
	gl.DrawArrays(gl.POINTS, 0, int32(len(cells)))

	gl.UseProgram(d.prog.line.id)
	gl.BindVertexArray(d.vao.line)
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)))
}

// updateViewport sends the new viewport to OpenGL.
func (d *display) updateViewport(vp viewport) {
	for _, p := range []program{d.prog.cell, d.prog.line} {
		gl.UseProgram(p.id)
		gl.Uniform2fv(p.vp, 2, &vp[0].X)
	}
}

// upload replaces the beginning of an array buffer with vs.
func upload(buf uint32, vs []vertex) {
	if len(vs) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vs)*int(unsafe.Sizeof(vertex{})), gl.Ptr(&vs[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// newDisplay compiles shaders and initializes a display.
func newDisplay(maxCells int) (*display, error) {
	d := new(display)

	// compile and link shaders
	var err error
	d.prog.cell.id, err = makeProg([]shader{
		{"Vertex", "cell.vert", cellVert, gl.CreateShader(gl.VERTEX_SHADER)},
		{"Geometry", "cell.geom", cellGeom, gl.CreateShader(gl.GEOMETRY_SHADER)},
		{"Fragment", "cell.frag", cellFrag, gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}
	d.prog.line.id, err = makeProg([]shader{
		{"Vertex", "line.vert", lineVert, gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", "line.frag", lineFrag, gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}

	// uniform location cannot be specified in the shaders in OpenGL 3.3 core
	d.prog.cell.vp = gl.GetUniformLocation(d.prog.cell.id, gl.Str("vp\x00"))
	d.prog.line.vp = gl.GetUniformLocation(d.prog.line.id, gl.Str("vp\x00"))

	// every cell has an axis and a force
	d.maxLines = 4 * maxCells
	d.vao.cell, d.buf.cell = newVertexArray(maxCells)
	d.vao.line, d.buf.line = newVertexArray(d.maxLines)

	return d, nil
}

// newVertexArray allocates a buffer of n vertices and describes its layout.
// Attribute locations are specified in the shaders with layout(location=n).
func newVertexArray(n int) (vao, buf uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)

	const size = int32(unsafe.Sizeof(vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, n*int(size), nil, gl.STREAM_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, size, unsafe.Offsetof(vertex{}.Pos))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, size, unsafe.Offsetof(vertex{}.Color))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, buf
}

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	path   string
	src    string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(shaders []shader) (uint32, error) {
	var fail bool
	for _, s := range shaders {
		str, free := gl.Strs(s.src + "\x00")
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(s.shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n+1)
			gl.GetShaderInfoLog(s.shader, n, &n, &log[0])
			fmt.Printf("### %s shader compilation error: %s ###\n\n%s\n\n", s.name, s.path, gl.GoStr(&log[0]))
			fail = true
			gl.DeleteShader(s.shader)
		}
	}
	if fail {
		return 0, fmt.Errorf("nissen: GLSL errors")
	}
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)

	return prog, nil
}
