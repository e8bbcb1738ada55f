package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	vertexShaderSource = `
		#version 410
		in vec2 vp;
		out vec2 uv;
		void main() {
			uv = vec2((vp.x + 1.0) * 0.5, (1.0 - vp.y) * 0.5);
			gl_Position = vec4(vp, 0.0, 1.0);
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410
		in vec2 uv;
		uniform sampler2D frame;
		out vec4 frag_colour;
		void main() {
			frag_colour = texture(frame, uv);
		}
	` + "\x00"
)

// Full-screen quad as a triangle strip.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// presenter shows a premultiplied RGBA frame as a full-window texture over
// a solid background.
type presenter struct {
	program uint32
	vao     uint32
	texture uint32
}

func newPresenter() (*presenter, error) {
	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}
	p := &presenter{program: program}
	gl.UseProgram(program)

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("frame\x00")), 0)

	// The frame is premultiplied.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	return p, nil
}

func (p *presenter) draw(frame *image.RGBA, bg color.NRGBA) {
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	b := frame.Bounds()
	if b.Empty() {
		return
	}
	gl.UseProgram(p.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

var (
	errCompile = errors.New("shader compile failed")
	errLink    = errors.New("program link failed")
)

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("%w: %s", errLink, infoLog(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: %s shader: %s", errCompile, shaderKind(shaderType), infoLog(log))
	}

	return shader, nil
}

func shaderKind(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("0x%x", shaderType)
}

// infoLog trims the NUL padding and trailing newlines GL leaves in a log.
func infoLog(log string) string {
	return strings.TrimRight(log, "\x00\r\n ")
}
