// seehuhn.de/go/pdfview - a PDF viewer with highlight overlays
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pdfview shows PDF documents with highlight overlays in a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/config"
)

// initializeAppContext prepares the program environment after the command
// line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	// console output would corrupt the terminal user interface
	env.quiet = cmd.Args().First() == "view"
	if env.Log, err = env.Cfg.Logging.Prepare(env.quiet); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.redirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))

	var err error
	if er := env.restore(); er != nil && !errors.Is(er, syscall.EINVAL) && !errors.Is(er, syscall.ENOTTY) {
		err = multierr.Append(err, fmt.Errorf("unable to sync log: %w", er))
	}
	return err
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Cfg != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = env.Cfg.Logging.ConsoleLogger.Level != "none" && !env.quiet
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	sourceFlags := []cli.Flag{
		&cli.StringFlag{Name: "password", Usage: "`PASSWORD` for encrypted documents"},
		&cli.BoolFlag{Name: "base64", Usage: "SOURCE is the base64-encoded document"},
		&cli.StringFlag{Name: "highlights", Aliases: []string{"H"}, Usage: "load highlights from `FILE` (YAML)"},
	}
	pageFlags := []cli.Flag{
		&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Usage: "page `NUMBER` to show"},
		&cli.FloatFlag{Name: "zoom", Aliases: []string{"z"}, Usage: "zoom `FACTOR`"},
	}

	app := &cli.Command{
		Name:            "pdfview",
		Usage:           "PDF viewer with highlight overlays",
		Version:         "(" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:         "view",
				Usage:        "Shows a document in the terminal",
				OnUsageError: usageErrorHandler,
				Action:       runView,
				Flags:        append(append([]cli.Flag{}, sourceFlags...), pageFlags...),
				ArgsUsage:    "SOURCE",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    file name or URL of the document (http, https, file and mem URLs
    are supported); with --base64 the base64-encoded document itself

KEYS:
    n, p, PgDn, PgUp    next and previous page
    +, -, 0             zoom in, zoom out, reset zoom
    Tab, Shift-Tab      next and previous highlight
    Enter               open the selected highlight
    f                   go to the linked field of the selected highlight
    d                   show where the document can be downloaded
    q, Esc              quit

Ctrl + mouse wheel zooms, a click on a highlight opens it.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "map",
				Usage:        "Prints the screen rectangles of the highlights on a page",
				OnUsageError: usageErrorHandler,
				Action:       runMap,
				Flags:        append(append([]cli.Flag{}, sourceFlags...), pageFlags...),
				ArgsUsage:    "SOURCE",
			},
			{
				Name:         "info",
				Usage:        "Prints the page count and page sizes of a document",
				OnUsageError: usageErrorHandler,
				Action:       runInfo,
				Flags:        sourceFlags,
				ArgsUsage:    "SOURCE",
			},
			{
				Name:         "render",
				Usage:        "Renders a page with its highlights to a PNG image",
				OnUsageError: usageErrorHandler,
				Action:       runRender,
				Flags:        append(append([]cli.Flag{}, sourceFlags...), pageFlags...),
				ArgsUsage:    "SOURCE DESTINATION",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Debug("Writing configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
