// Package shader builds the GLSL programs used by the renderer.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/logger"
)

var (
	// ErrCompile wraps a stage that failed to compile.
	ErrCompile = errors.New("shader compile failed")

	// ErrLink wraps a program that failed to link.
	ErrLink = errors.New("shader link failed")

	// ErrUniformNotFound is returned when a uniform is missing or was
	// optimised out by the driver.
	ErrUniformNotFound = errors.New("uniform not found")
)

// Stage is one GLSL source and its pipeline stage.
type Stage struct {
	Name   string // For messages, e.g. "vertex"
	Type   uint32 // gl.VERTEX_SHADER, gl.FRAGMENT_SHADER
	Source string // Without trailing NUL
}

// Build compiles the stages and links them into a program. Driver
// warnings on success are logged at debug level.
func Build(stages ...Stage) (uint32, error) {
	log := logger.Named("shader")

	ids := make([]uint32, 0, len(stages))
	defer func() {
		for _, id := range ids {
			gl.DeleteShader(id)
		}
	}()

	for _, st := range stages {
		id, err := compile(log, st)
		if err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}

	program := gl.CreateProgram()
	for _, id := range ids {
		gl.AttachShader(program, id)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	info := readLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })

	if status == gl.FALSE {
		gl.DeleteProgram(program)
		log.Error("link failed", zap.String("log", info))
		return 0, fmt.Errorf("%w: %s", ErrLink, info)
	}
	if info != "" {
		log.Debug("link log", zap.String("log", info))
	}
	return program, nil
}

func compile(log *zap.Logger, st Stage) (uint32, error) {
	id := gl.CreateShader(st.Type)
	csource, free := gl.Strs(st.Source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	var logLen int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
	info := readLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(id, logLen, nil, buf) })

	if status == gl.FALSE {
		gl.DeleteShader(id)
		log.Error("compile failed", zap.String("stage", st.Name), zap.String("log", info))
		return 0, fmt.Errorf("%w: %s: %s", ErrCompile, st.Name, info)
	}
	if info != "" {
		log.Debug("compile log", zap.String("stage", st.Name), zap.String("log", info))
	}
	return id, nil
}

// readLog fetches an info log of n bytes (NUL included) through get.
func readLog(n int32, get func(buf *uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	get(&buf[0])
	return cleanLog(buf)
}

// cleanLog cuts a driver log at its NUL and trims whitespace.
func cleanLog(buf []byte) string {
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		buf = buf[:i]
	}
	return strings.TrimSpace(string(buf))
}

// Uniform returns the location of name in program.
func Uniform(program uint32, name string) (int32, error) {
	return checkLocation(gl.GetUniformLocation(program, gl.Str(name+"\x00")), program, name)
}

func checkLocation(loc int32, program uint32, name string) (int32, error) {
	if loc < 0 {
		return -1, fmt.Errorf("%w: %q in program %d", ErrUniformNotFound, name, program)
	}
	return loc, nil
}
