package glcontext

import (
	"fmt"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// ContextAttributeFlags is a set of capabilities a context was or should be
// created with. These roughly follow the WebGL context attributes.
type ContextAttributeFlags uint8

const (
	// Alpha gives surfaces 8 bits of alpha, otherwise they are RGBX.
	Alpha ContextAttributeFlags = 1 << iota
	// Depth gives surfaces a 24-bit depth buffer.
	Depth
	// Stencil gives surfaces an 8-bit stencil buffer.
	Stencil
	// CompatibilityProfile selects the legacy profile instead of core.
	CompatibilityProfile
)

var flagNames = []struct {
	flag ContextAttributeFlags
	name string
}{
	{Alpha, "alpha"},
	{Depth, "depth"},
	{Stencil, "stencil"},
	{CompatibilityProfile, "compatibility_profile"},
}

func (f ContextAttributeFlags) Union(other ContextAttributeFlags) ContextAttributeFlags {
	return f | other
}

func (f ContextAttributeFlags) Intersect(other ContextAttributeFlags) ContextAttributeFlags {
	return f & other
}

// Difference returns the flags of f that are not in other.
func (f ContextAttributeFlags) Difference(other ContextAttributeFlags) ContextAttributeFlags {
	return f &^ other
}

// Contains reports whether every flag of other is set in f.
func (f ContextAttributeFlags) Contains(other ContextAttributeFlags) bool {
	return f&other == other
}

func (f ContextAttributeFlags) IsEmpty() bool {
	return f == 0
}

func (f ContextAttributeFlags) String() string {
	if f.IsEmpty() {
		return "none"
	}
	var names []string
	for _, n := range flagNames {
		if f.Contains(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseContextAttributeFlags builds a flag set from flag names, e.g.
// "alpha", "depth". Unknown names are an error.
func ParseContextAttributeFlags(names ...string) (ContextAttributeFlags, error) {
	var f ContextAttributeFlags
	for _, name := range names {
		found := false
		for _, n := range flagNames {
			if strings.EqualFold(strings.TrimSpace(name), n.name) {
				f = f.Union(n.flag)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown context attribute flag: %q", name)
		}
	}
	return f, nil
}

func (f *ContextAttributeFlags) UnmarshalYAML(b []byte) error {
	var names []string
	err := yaml.Unmarshal(b, &names)
	if err != nil {
		return err
	}
	parsed, err := ParseContextAttributeFlags(names...)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// GLVersion is an OpenGL or OpenGL ES version. The two APIs number their
// versions differently, so a version only means something next to an API.
type GLVersion struct {
	Major uint8
	Minor uint8
}

func NewGLVersion(major, minor uint8) GLVersion {
	return GLVersion{Major: major, Minor: minor}
}

// ParseGLVersion parses "major.minor", e.g. "4.1".
func ParseGLVersion(s string) (GLVersion, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return GLVersion{}, fmt.Errorf("version %q should look like <major>.<minor>", s)
	}
	ma, err := strconv.ParseUint(major, 10, 8)
	if err != nil {
		return GLVersion{}, fmt.Errorf("invalid major version in %q: %w", s, err)
	}
	mi, err := strconv.ParseUint(minor, 10, 8)
	if err != nil {
		return GLVersion{}, fmt.Errorf("invalid minor version in %q: %w", s, err)
	}
	return NewGLVersion(uint8(ma), uint8(mi)), nil
}

func (v GLVersion) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

func (v GLVersion) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

func (v GLVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// UnmarshalYAML takes the raw scalar so that an unquoted 3.0 keeps its minor
// version instead of going through a float.
func (v *GLVersion) UnmarshalYAML(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"'`)
	parsed, err := ParseGLVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ContextAttributes describes the configuration of a context independent of
// the platform. It is a plain value and is copied wherever it is needed.
type ContextAttributes struct {
	Version GLVersion
	Flags   ContextAttributeFlags
}

func NewContextAttributes(version GLVersion, flags ContextAttributeFlags) ContextAttributes {
	return ContextAttributes{Version: version, Flags: flags}
}

// ZeroedAttributes is the placeholder for attributes that are not known yet.
// It must never be reported as the attributes of a real context.
func ZeroedAttributes() ContextAttributes {
	return ContextAttributes{Version: NewGLVersion(0, 0)}
}

func (a ContextAttributes) IsZeroed() bool {
	return a == ZeroedAttributes()
}

func (a ContextAttributes) String() string {
	return fmt.Sprintf("GL %s [%s]", a.Version, a.Flags)
}
