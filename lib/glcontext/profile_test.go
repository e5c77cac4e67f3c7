package glcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeDriver simulates the query surface of a bound context.
type fakeDriver struct {
	mask       int32
	errors     []uint32
	extensions []string

	integerQueries  int
	extensionsCalls int
}

func (f *fakeDriver) GetInteger(pname uint32) int32 {
	f.integerQueries++
	if pname != glContextProfileMask {
		return 0
	}
	return f.mask
}

func (f *fakeDriver) GetError() uint32 {
	if len(f.errors) == 0 {
		return glNoError
	}
	e := f.errors[0]
	f.errors = f.errors[1:]
	return e
}

func (f *fakeDriver) Extensions() []string {
	f.extensionsCalls++
	return f.extensions
}

const (
	glInvalidEnum = 0x0500
	coreBit       = 0x00000001
)

func TestNoProfileConcept(t *testing.T) {
	d := NewProfileDetector(OpenGLES, nil)
	drivers := []*fakeDriver{
		{mask: glContextCompatibilityProfileBit},
		{extensions: []string{ARBCompatibility}},
		{errors: []uint32{glInvalidEnum}},
	}
	for _, drv := range drivers {
		assert.False(t, d.UsesCompatibilityProfile(drv))
		assert.Zero(t, drv.integerQueries)
		assert.Zero(t, drv.extensionsCalls)
	}
}

func TestProfileMaskConfirmsCompatibility(t *testing.T) {
	drv := &fakeDriver{mask: glContextCompatibilityProfileBit}
	assert.True(t, NewProfileDetector(OpenGL, nil).UsesCompatibilityProfile(drv))
	assert.Zero(t, drv.extensionsCalls)
}

func TestProfileMaskErrorFallsBackToExtensions(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		want       bool
	}{
		{"with extension", []string{"GL_ARB_debug_output", ARBCompatibility}, true},
		{"without extension", []string{"GL_ARB_debug_output"}, false},
		{"no extensions", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := &fakeDriver{
				mask:       glContextCompatibilityProfileBit,
				errors:     []uint32{glInvalidEnum},
				extensions: tt.extensions,
			}
			assert.Equal(t, tt.want, NewProfileDetector(OpenGL, nil).UsesCompatibilityProfile(drv))
			assert.Equal(t, 1, drv.extensionsCalls)
		})
	}
}

func TestCoreMaskStillChecksExtensions(t *testing.T) {
	drv := &fakeDriver{mask: coreBit, extensions: []string{ARBCompatibility}}
	assert.True(t, NewProfileDetector(OpenGL, nil).UsesCompatibilityProfile(drv))
	assert.Equal(t, 1, drv.extensionsCalls)

	drv = &fakeDriver{mask: coreBit}
	assert.False(t, NewProfileDetector(OpenGL, nil).UsesCompatibilityProfile(drv))
}

func TestEmptyMaskIsNotCompatibility(t *testing.T) {
	drv := &fakeDriver{mask: 0}
	assert.False(t, NewProfileDetector(OpenGL, nil).UsesCompatibilityProfile(drv))
	assert.Equal(t, 1, drv.extensionsCalls)
}

func TestErrorsAreDrained(t *testing.T) {
	drv := &fakeDriver{errors: []uint32{glInvalidEnum, glInvalidEnum, glInvalidEnum}}
	NewProfileDetector(OpenGL, nil).UsesCompatibilityProfile(drv)
	assert.Empty(t, drv.errors)
	assert.Equal(t, uint32(glNoError), drv.GetError())
}

func TestDrainingGivesUp(t *testing.T) {
	errs := make([]uint32, 100)
	for i := range errs {
		errs[i] = glInvalidEnum
	}
	drv := &fakeDriver{errors: errs}
	assert.False(t, NewProfileDetector(OpenGL, nil).UsesCompatibilityProfile(drv))
	assert.Len(t, drv.errors, 100-1-maxDrainedErrors)
}

func TestDefaultProfileDetectorMatchesPlatform(t *testing.T) {
	d := DefaultProfileDetector(nil)
	if PlatformAPI == OpenGLES {
		assert.IsType(t, &noProfileDetector{}, d)
	} else {
		assert.IsType(t, &desktopProfileDetector{}, d)
	}
}

func TestAPIString(t *testing.T) {
	assert.Equal(t, "OpenGL", OpenGL.String())
	assert.Equal(t, "OpenGL ES", OpenGLES.String())
}
