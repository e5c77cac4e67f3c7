package rendering

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Driver answers profile queries against the context bound to the calling
// thread. Init must have succeeded on that thread first.
type Driver struct{}

func (Driver) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (Driver) GetError() uint32 {
	return gl.GetError()
}

// Extensions lists the extensions of the bound context. Contexts older than
// 3.0 only have the space separated EXTENSIONS string.
func (d Driver) Extensions() []string {
	n := d.GetInteger(gl.NUM_EXTENSIONS)
	if d.GetError() != gl.NO_ERROR || n <= 0 {
		clearOpenGLError()
		s := gl.GetString(gl.EXTENSIONS)
		if s == nil {
			clearOpenGLError()
			return nil
		}
		return strings.Fields(gl.GoStr(s))
	}

	exts := make([]string, 0, n)
	for i := range uint32(n) {
		s := gl.GetStringi(gl.EXTENSIONS, i)
		if s == nil {
			continue
		}
		exts = append(exts, gl.GoStr(s))
	}
	return exts
}

func clearOpenGLError() {
	for range 16 {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}
