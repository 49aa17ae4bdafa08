// Command ciscosh is a demonstration shell with a network-device-style
// command set:
//
//	ping <host>
//	enable
//	  show
//	    startup-config
//	    running-config
//	    interface <intf>
//	  configure
//	    interface <intf>
//	      [no] shutdown
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/promptr-tools/promptr/dispatch"
	"github.com/promptr-tools/promptr/internal/log"
	"github.com/promptr-tools/promptr/shell"
	"github.com/promptr-tools/promptr/ui"
	"github.com/promptr-tools/promptr/ui/style"
)

func main() {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	style.Init(interactive)

	opts := []shell.Option{}
	if interactive {
		opts = append(opts, shell.WithReader(ui.NewTerminal()))
	} else {
		opts = append(opts, shell.WithReader(ui.NewScript(os.Stdin, os.Stdout)))
	}

	if path := os.Getenv("CISCOSH_LOG"); path != "" {
		logger, err := log.New(path, log.ParseLevel(os.Getenv("CISCOSH_LOG_LEVEL")))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer logger.Close()
		opts = append(opts, shell.WithLogger(logger))
	}

	sh := shell.New(opts...)
	if err := register(sh); err != nil {
		// Registration conflicts are programmer errors, fatal to startup.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := sh.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func register(sh *shell.Shell) error {
	interfaces := dispatch.StaticSuggestions("g0", "g1", "g2", "g3")

	if err := sh.AddCommand("ping", dispatch.CommandSpec{
		Summary: "Send a test echo",
		Args: []dispatch.ArgSpec{
			{Name: "host", Summary: "Destination host", Required: true},
		},
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.Write(fmt.Sprintf("pinging %s\n", ctx.Arg("host")))
			return nil
		},
	}); err != nil {
		return err
	}

	if err := sh.AddState("enable", shell.StateSpec{
		Summary: "Enter privileged mode",
		Prompt:  "en",
	}); err != nil {
		return err
	}

	if err := sh.AddStateGroup("enable", "show", "Display device information"); err != nil {
		return err
	}

	if err := sh.AddStateCommand("enable", "show startup-config", dispatch.CommandSpec{
		Summary: "Show the startup configuration",
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.Write("startup configuration\n")
			return nil
		},
	}); err != nil {
		return err
	}

	if err := sh.AddStateCommand("enable", "show running-config", dispatch.CommandSpec{
		Summary: "Show the running configuration",
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.Write("running configuration\n")
			return nil
		},
	}); err != nil {
		return err
	}

	if err := sh.AddStateCommand("enable", "show interface", dispatch.CommandSpec{
		Summary: "Show interface counters",
		Args: []dispatch.ArgSpec{
			{Name: "intf", Summary: "Interface name", Required: true, Suggest: interfaces},
		},
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.Write(fmt.Sprintf("counters for %s\n", ctx.Arg("intf")))
			return nil
		},
	}); err != nil {
		return err
	}

	if err := sh.AddState("configure", shell.StateSpec{
		Parent:  "enable",
		Summary: "Enter configuration mode",
		Prompt:  "conf",
	}); err != nil {
		return err
	}

	if err := sh.AddState("interface", shell.StateSpec{
		Parent:  "configure",
		Summary: "Configure an interface",
		Prompt:  "{intf}",
		Args: []dispatch.ArgSpec{
			{Name: "intf", Summary: "Interface name", Required: true, Suggest: interfaces},
		},
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.SetValue("intf", ctx.Arg("intf"))
			return nil
		},
	}); err != nil {
		return err
	}

	return sh.AddStateCommand("interface", "shutdown", dispatch.CommandSpec{
		Summary:          "Disable the interface",
		OptionalPrefixes: []string{"no"},
		PassName:         true,
		Handler: func(ctx *dispatch.Context) error {
			intf, _ := ctx.Shell.Value("intf")
			ctx.Shell.Write(fmt.Sprintf("will %s %v\n", ctx.CalledName, intf))
			return nil
		},
	})
}
