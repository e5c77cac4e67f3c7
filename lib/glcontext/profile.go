package glcontext

import (
	"log/slog"
	"slices"

	"github.com/fosdem/glcontext/lib/metrics"
)

const (
	glNoError                        = 0
	glContextProfileMask             = 0x9126
	glContextCompatibilityProfileBit = 0x00000002

	// ARBCompatibility is advertised by contexts that run the legacy profile.
	ARBCompatibility = "GL_ARB_compatibility"

	// A lost context can report an error forever, so draining gives up
	// after this many.
	maxDrainedErrors = 16
)

// API is the family of GL implementation a platform provides.
type API int

const (
	OpenGL API = iota
	OpenGLES
)

func (a API) String() string {
	switch a {
	case OpenGL:
		return "OpenGL"
	case OpenGLES:
		return "OpenGL ES"
	default:
		return "unknown"
	}
}

// Driver is the query surface of the context bound to the calling thread.
type Driver interface {
	GetInteger(pname uint32) int32
	// GetError returns and clears one pending error, or 0.
	GetError() uint32
	Extensions() []string
}

// ProfileDetector tells whether the currently bound context runs the
// compatibility profile. It must be called on the thread that owns the
// context.
type ProfileDetector interface {
	// UsesCompatibilityProfile returns true only when the compatibility
	// profile is confirmed. Anything else, including an undeterminable
	// profile, is false.
	UsesCompatibilityProfile(d Driver) bool
}

// NewProfileDetector picks the detector for api. Call it once at startup.
func NewProfileDetector(api API, logger *slog.Logger) ProfileDetector {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("module", "glcontext"))
	if api == OpenGLES {
		return &noProfileDetector{}
	}
	return &desktopProfileDetector{logger: logger}
}

// DefaultProfileDetector is NewProfileDetector for the platform this binary
// was built for.
func DefaultProfileDetector(logger *slog.Logger) ProfileDetector {
	return NewProfileDetector(PlatformAPI, logger)
}

// OpenGL ES has no profiles.
type noProfileDetector struct{}

func (*noProfileDetector) UsesCompatibilityProfile(Driver) bool {
	metrics.ProfileProbes.WithLabelValues("none", "core").Inc()
	return false
}

type desktopProfileDetector struct {
	logger *slog.Logger
}

func (p *desktopProfileDetector) UsesCompatibilityProfile(d Driver) bool {
	mask := d.GetInteger(glContextProfileMask)
	glerr := d.GetError()
	if glerr == glNoError {
		if mask&glContextCompatibilityProfileBit != 0 {
			p.record("profile_mask", true)
			return true
		}
		if mask == 0 {
			p.logger.Debug("profile mask reports no profile, checking extensions")
		}
	} else {
		p.logger.Debug("profile mask query failed, checking extensions", slog.Int("gl_error", int(glerr)))
		drainErrors(d)
	}

	compat := slices.Contains(d.Extensions(), ARBCompatibility)
	p.record("extensions", compat)
	return compat
}

func (p *desktopProfileDetector) record(tier string, compat bool) {
	result := "core"
	if compat {
		result = "compatibility"
	}
	metrics.ProfileProbes.WithLabelValues(tier, result).Inc()
}

func drainErrors(d Driver) {
	for i := 0; i < maxDrainedErrors; i++ {
		if d.GetError() == glNoError {
			return
		}
	}
}
