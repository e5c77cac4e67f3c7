package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fosdem/glcontext/lib/glcontext"
	yaml "github.com/goccy/go-yaml"
)

const defaultSize = 64

type Config struct {
	Contexts map[string]*ContextCfg
	Api      *ApiCfg
}

// ContextCfg is one context to create. Only the attributes are passed to the
// core; the rest configures the window that carries the context.
type ContextCfg struct {
	Version glcontext.GLVersion
	Flags   glcontext.ContextAttributeFlags
	Width   int
	Height  int
	Visible bool
}

type ApiCfg struct {
	Bind string
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Contexts) < 1 {
		return fmt.Errorf("at least one context should be defined")
	}
	for _, name := range c.Names() {
		err := c.Contexts[name].Validate()
		if err != nil {
			return fmt.Errorf("context %s is invalid: %w", name, err)
		}
	}
	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api.bind must be set when the api section is present")
	}
	return nil
}

// Names returns the context names in a stable order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Contexts))
	for k := range c.Contexts {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Contexts:\n")
	for _, name := range c.Names() {
		b.WriteString(fmt.Sprintf("  %s (%s)\n", name, c.Contexts[name].Attributes()))
	}
	if c.Api != nil {
		b.WriteString(fmt.Sprintf("\nMetrics on %s\n", c.Api.Bind))
	}
	return b.String()
}

func (c *ContextCfg) Validate() error {
	if c == nil {
		return fmt.Errorf("context has no settings")
	}
	if c.Version.IsZero() {
		return fmt.Errorf("version must be specified and nonzero")
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("width and height must be nonnegative")
	}
	return nil
}

func (c *ContextCfg) Attributes() glcontext.ContextAttributes {
	return glcontext.NewContextAttributes(c.Version, c.Flags)
}

// Size returns the window size, filling in the default for unset sides.
func (c *ContextCfg) Size() (int, int) {
	w, h := c.Width, c.Height
	if w == 0 {
		w = defaultSize
	}
	if h == 0 {
		h = defaultSize
	}
	return w, h
}
