/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command irccd is the daemon entry point (§6 CLI surface): it loads a
// config file, builds an Engine and runs it until SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
	spfcbr "github.com/spf13/cobra"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/engine"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/ircversion"
)

var (
	configPath string
	verbose    bool
)

func main() {
	root := &spfcbr.Command{
		Use:     "irccd",
		Short:   "IRC bot daemon event dispatch engine",
		Version: ircversion.Current().String(),
		RunE:    runDaemon,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "force verbose (debug) logging")

	root.AddCommand(infoCmd(), pathsCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return "irccd.yaml"
	}
	return home + "/.irccd.yaml"
}

func logLevel() irclog.Level {
	if verbose {
		return irclog.DebugLevel
	}
	return irclog.InfoLevel
}

func runDaemon(_ *spfcbr.Command, _ []string) error {
	log := irclog.New(os.Stderr, logLevel())

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configPath, err)
	}

	e := engine.New(cfg, log)
	return e.Start(context.Background())
}

func infoCmd() *spfcbr.Command {
	return &spfcbr.Command{
		Use:   "info",
		Short: "print build and runtime information",
		RunE: func(_ *spfcbr.Command, _ []string) error {
			v := ircversion.Current()
			fmt.Println(v.String())
			fmt.Printf("config: %s\n", configPath)
			fmt.Printf("go: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func pathsCmd() *spfcbr.Command {
	return &spfcbr.Command{
		Use:   "paths",
		Short: "print the paths irccd would search for its config",
		RunE: func(_ *spfcbr.Command, _ []string) error {
			fmt.Println(defaultConfigPath())
			fmt.Println("./irccd.yaml")
			return nil
		},
	}
}

func versionCmd() *spfcbr.Command {
	return &spfcbr.Command{
		Use:   "version",
		Short: "print the version and exit",
		RunE: func(_ *spfcbr.Command, _ []string) error {
			fmt.Println(ircversion.Current().String())
			return nil
		},
	}
}
