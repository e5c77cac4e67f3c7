package windowctx

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glcontext/lib/glcontext"
	"github.com/fosdem/glcontext/lib/metrics"
	"github.com/fosdem/glcontext/lib/rendering"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var _ glcontext.Driver = rendering.Driver{}

type Options struct {
	Width   int
	Height  int
	Visible bool
}

// Context is a native GL context owned by a glfw window.
type Context struct {
	ID   glcontext.ContextID
	Name string
	// Requested is what the context was asked for, Attributes what it got.
	Requested  glcontext.ContextAttributes
	Attributes glcontext.ContextAttributes
	Window     *glfw.Window

	logger *slog.Logger
}

// Create makes a window with a context matching requested and binds the
// context to the calling thread, which must stay locked to its OS thread.
func Create(reg *glcontext.Registry, detector glcontext.ProfileDetector, name string, requested glcontext.ContextAttributes, opts Options) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	c := &Context{
		Name:       name,
		Requested:  requested,
		Attributes: glcontext.ZeroedAttributes(),
	}

	applyHints(Hints(requested, glcontext.PlatformAPI, opts.Visible))
	window, err := glfw.CreateWindow(opts.Width, opts.Height, name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window for %s (%s): %w", name, requested, err)
	}
	window.MakeContextCurrent()
	c.Window = window

	err = rendering.Init()
	if err != nil {
		window.Destroy()
		return nil, err
	}

	c.ID = reg.Allocate()
	c.logger = slog.Default().With(slog.String("module", "windowctx"), slog.String("context", c.ID.String()))
	c.Attributes = granted(window, requested, detector.UsesCompatibilityProfile(rendering.Driver{}))

	profile := "core"
	if c.Attributes.Flags.Contains(glcontext.CompatibilityProfile) {
		profile = "compatibility"
	}
	metrics.ContextsCreated.WithLabelValues(profile).Inc()

	if c.Attributes.Flags.Intersect(glcontext.CompatibilityProfile) != requested.Flags.Intersect(glcontext.CompatibilityProfile) {
		c.logger.Warn(fmt.Sprintf("asked for %s but got the %s profile", requested, profile))
	}
	c.logger.Info(fmt.Sprintf("created %s", name),
		slog.String("requested", requested.String()),
		slog.String("granted", c.Attributes.String()),
	)
	return c, nil
}

// granted reads back the version the driver gave us. Buffer flags are taken
// from the request; the profile flag comes from the detector.
func granted(window *glfw.Window, requested glcontext.ContextAttributes, compat bool) glcontext.ContextAttributes {
	version := glcontext.NewGLVersion(
		uint8(window.GetAttrib(glfw.ContextVersionMajor)),
		uint8(window.GetAttrib(glfw.ContextVersionMinor)),
	)
	return grantedAttributes(version, requested.Flags, compat)
}

func grantedAttributes(version glcontext.GLVersion, requested glcontext.ContextAttributeFlags, compat bool) glcontext.ContextAttributes {
	flags := requested.Difference(glcontext.CompatibilityProfile)
	if compat {
		flags = flags.Union(glcontext.CompatibilityProfile)
	}
	return glcontext.NewContextAttributes(version, flags)
}

// MakeCurrent binds the context to the calling thread.
func (c *Context) MakeCurrent() {
	c.Window.MakeContextCurrent()
}

// UsesCompatibilityProfile re-runs detection against this context.
func (c *Context) UsesCompatibilityProfile(detector glcontext.ProfileDetector) bool {
	c.MakeCurrent()
	return detector.UsesCompatibilityProfile(rendering.Driver{})
}

func (c *Context) Destroy() {
	if c.Window == nil {
		return
	}
	c.logger.Debug("destroying context")
	c.Window.Destroy()
	c.Window = nil
	metrics.ContextsDestroyed.Inc()
}

// Terminate releases glfw once every context is destroyed.
func Terminate() {
	glfw.Terminate()
}
