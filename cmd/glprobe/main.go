package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/fosdem/glcontext/lib/api"
	"github.com/fosdem/glcontext/lib/config"
	"github.com/fosdem/glcontext/lib/glcontext"
	ctxlog "github.com/fosdem/glcontext/lib/log"
	"github.com/fosdem/glcontext/lib/windowctx"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatalf("Usage: %s [-debug] <config file>", os.Args[0])
	}
	ctxlog.Setup(*debug)

	cfg, err := config.Parse(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	registry := glcontext.NewRegistry()
	detector := glcontext.DefaultProfileDetector(nil)

	var contexts []*windowctx.Context
	var reports []api.ContextReport
	for _, name := range cfg.Names() {
		ctxCfg := cfg.Contexts[name]
		width, height := ctxCfg.Size()
		c, err := windowctx.Create(registry, detector, name, ctxCfg.Attributes(), windowctx.Options{
			Width:   width,
			Height:  height,
			Visible: ctxCfg.Visible,
		})
		if err != nil {
			log.Fatalf("could not create context %s: %s", name, err)
		}
		contexts = append(contexts, c)
		reports = append(reports, api.ContextReport{
			ID:        uint64(c.ID),
			Name:      c.Name,
			Requested: c.Requested.String(),
			Granted:   c.Attributes.String(),
			Compat:    c.Attributes.Flags.Contains(glcontext.CompatibilityProfile),
		})
		fmt.Printf("%s\t%s\trequested %s\tgranted %s\n", c.ID, name, c.Requested, c.Attributes)
	}

	if cfg.Api != nil {
		a := api.ServeInBackground(cfg.Api)
		a.Publish(reports)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
	}

	for _, c := range contexts {
		c.Destroy()
	}
	windowctx.Terminate()
}
