package windowctx

import (
	"github.com/fosdem/glcontext/lib/glcontext"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Hint struct {
	Key   glfw.Hint
	Value int
}

const (
	alphaBits   = 8
	depthBits   = 24
	stencilBits = 8
)

// Hints translates requested attributes into glfw window hints for api.
// Each flag maps to exactly one hint; whether the platform can honour it is
// left to glfw.
func Hints(attrs glcontext.ContextAttributes, api glcontext.API, visible bool) []Hint {
	hints := []Hint{
		{glfw.Resizable, glfw.False},
		{glfw.Visible, boolHint(visible)},
		{glfw.ContextVersionMajor, int(attrs.Version.Major)},
		{glfw.ContextVersionMinor, int(attrs.Version.Minor)},
		{glfw.AlphaBits, bitsIf(attrs.Flags, glcontext.Alpha, alphaBits)},
		{glfw.DepthBits, bitsIf(attrs.Flags, glcontext.Depth, depthBits)},
		{glfw.StencilBits, bitsIf(attrs.Flags, glcontext.Stencil, stencilBits)},
	}

	if api == glcontext.OpenGLES {
		return append(hints, Hint{glfw.ClientAPI, glfw.OpenGLESAPI})
	}
	hints = append(hints, Hint{glfw.ClientAPI, glfw.OpenGLAPI})

	// Profiles only exist from 3.2 on
	if !attrs.Version.AtLeast(3, 2) {
		return append(hints, Hint{glfw.OpenGLProfile, glfw.OpenGLAnyProfile})
	}
	if attrs.Flags.Contains(glcontext.CompatibilityProfile) {
		return append(hints,
			Hint{glfw.OpenGLProfile, glfw.OpenGLCompatProfile},
			Hint{glfw.OpenGLForwardCompatible, glfw.False},
		)
	}
	return append(hints,
		Hint{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		Hint{glfw.OpenGLForwardCompatible, glfw.True},
	)
}

func applyHints(hints []Hint) {
	glfw.DefaultWindowHints()
	for _, h := range hints {
		glfw.WindowHint(h.Key, h.Value)
	}
}

func bitsIf(flags, flag glcontext.ContextAttributeFlags, bits int) int {
	if flags.Contains(flag) {
		return bits
	}
	return 0
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
