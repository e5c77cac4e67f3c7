package rendering

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Init loads the GL entry points for the context bound to this thread.
func Init() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	slog.Debug("OpenGL initialised",
		slog.String("module", "rendering"),
		slog.String("vendor", gl.GoStr(gl.GetString(gl.VENDOR))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
	)

	return nil
}
