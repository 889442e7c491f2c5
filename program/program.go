// Package program compiles and links OpenGL shader programs and tracks
// their vertex attributes by name.
package program

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute is a vertex attribute of a linked program.
type Attribute struct {
	Location     int32
	SizeInFloats int32
}

// Program is a linked shader program.
type Program struct {
	handle     uint32
	attributes map[string]Attribute
}

// New compiles the vertex and fragment sources, links them, and resolves
// the locations of the named attributes. attributeSizes maps attribute
// name to its size in floats (e.g. a vec2 position is 2).
func New(vertexSource, fragmentSource string, attributeSizes map[string]int32) (*Program, error) {
	handle, err := newProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}

	p := &Program{
		handle:     handle,
		attributes: make(map[string]Attribute, len(attributeSizes)),
	}
	for name, size := range attributeSizes {
		loc := gl.GetAttribLocation(handle, gl.Str(name+"\x00"))
		if loc < 0 {
			gl.DeleteProgram(handle)
			return nil, fmt.Errorf("program: attribute %q not found", name)
		}
		p.attributes[name] = Attribute{Location: loc, SizeInFloats: size}
	}
	return p, nil
}

// Handle returns the underlying program object.
func (p *Program) Handle() uint32 {
	return p.handle
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.handle)
}

// Attribute looks up a vertex attribute resolved at link time.
func (p *Program) Attribute(name string) (Attribute, bool) {
	a, ok := p.attributes[name]
	return a, ok
}

// UniformLocation resolves a uniform by name, returning -1 if the uniform
// is not active in the program.
func (p *Program) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
}

// Delete releases the program object.
func (p *Program) Delete() {
	gl.DeleteProgram(p.handle)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
