//go:build android || ios

package glcontext

// PlatformAPI is the GL family this platform provides.
const PlatformAPI = OpenGLES
