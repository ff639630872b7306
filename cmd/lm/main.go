// Copyright 2024 The lite-manager Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command lm drives the lite-manager configuration resolver: it loads a
// user-config file, walks an lm.cfg tree, and emits config.h / .lm.mk (and
// optionally a top-level Makefile).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	lm "github.com/sgl-org/lite-manager"
	"github.com/sgl-org/lite-manager/pkg/fsutil"
	"github.com/sgl-org/lite-manager/pkg/genwriter"
	"github.com/sgl-org/lite-manager/pkg/ui"
)

const appVersion = "0.1.0"

var (
	lmcfgPath   string
	projcfgPath string
	outPath     string
	mkPath      string
	memMB       int
	blind       bool
	genPath     string
	project     string
	buildDir    string
	prefix      string
	rmPath      string
	cpMode      bool
	showFlagRef bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lm",
		Short:         "lite-manager: a Kconfig-style build configuration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       appVersion,
		RunE:          runRoot,
	}
	cmd.SetVersionTemplate("lite-manager {{.Version}}\nLicensed under the Apache License, Version 2.0.\n")

	f := cmd.Flags()
	f.StringVar(&lmcfgPath, "lmcfg", "lm.cfg", "top lm.cfg")
	f.StringVar(&projcfgPath, "projcfg", ".config", "user config file")
	f.StringVar(&outPath, "out", "config.h", "output header path")
	f.StringVar(&mkPath, "mk", ".lm.mk", "output makefile-include path")
	f.IntVar(&memMB, "mem", 0, "pool size in MB (ignored by this implementation)")
	f.BoolVar(&blind, "blind", false, "suppress the final summary table")
	f.StringVar(&genPath, "gen", "", "emit top Makefile to PATH (skips header and .mk emission)")
	f.StringVar(&project, "project", "", "project name embedded in the Makefile")
	f.StringVar(&buildDir, "build", "build", "build directory embedded in the Makefile")
	f.StringVar(&prefix, "prefix", "", "cross-compiler prefix embedded in the Makefile")
	f.StringVar(&rmPath, "rm", "", "delete file, or a directory's immediate children, and exit")
	f.BoolVar(&cpMode, "cp", false, "copy one file and exit; takes SRC DST as positional arguments")
	f.BoolVar(&showFlagRef, "flag", false, "print the build-variable syntax reference and exit")
	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	glog.V(1).Infof("lm[%s]: run start", runID)

	if showFlagRef {
		printFlagReference(cmd.OutOrStdout())
		return nil
	}
	if rmPath != "" {
		return fsutil.RemoveOneLevel(rmPath)
	}
	if cpMode {
		if len(args) != 2 {
			return errors.New("--cp requires exactly two positional arguments: SRC DST")
		}
		return fsutil.CopyFile(args[0], args[1])
	}

	sess := lm.NewSession()
	sess.Glob = fsutil.Glob

	if err := lm.LoadUserConfig(sess, projcfgPath, cmd.Flags().Changed("projcfg")); err != nil {
		return err
	}
	if err := lm.ParseDeclarations(sess, ".", lmcfgPath); err != nil {
		return err
	}
	glog.V(1).Infof("lm[%s]: resolved %d symbols", runID, sess.Declared.Len())

	if genPath != "" {
		if err := writeGenMakefile(sess); err != nil {
			return err
		}
		printSummary(sess)
		return nil
	}
	if err := writeArtifacts(sess); err != nil {
		return err
	}
	printSummary(sess)
	return nil
}

func writeArtifacts(sess *lm.Session) error {
	if err := fsutil.MkdirAll(filepath.Dir(outPath)); err != nil {
		return err
	}
	if err := fsutil.MkdirAll(filepath.Dir(mkPath)); err != nil {
		return err
	}
	hf, err := os.Create(outPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer hf.Close()

	view := sess.Emit()
	if err := genwriter.WriteHeader(hf, view); err != nil {
		return errors.WithStack(err)
	}

	mf, err := os.Create(mkPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer mf.Close()
	return errors.WithStack(genwriter.WriteMk(mf, view))
}

func writeGenMakefile(sess *lm.Session) error {
	if err := fsutil.MkdirAll(filepath.Dir(genPath)); err != nil {
		return err
	}
	gf, err := os.Create(genPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer gf.Close()
	return errors.WithStack(genwriter.WriteMakefile(gf, genwriter.MakefileOptions{
		Project:  project,
		BuildDir: buildDir,
		Prefix:   prefix,
		MkPath:   mkPath,
	}))
}

func printSummary(sess *lm.Session) {
	if blind {
		return
	}
	total, disabled := sess.Counts()
	view := sess.Emit()
	lists := make([]ui.ListCount, 0, len(view.Lists))
	for _, l := range view.Lists {
		lists = append(lists, ui.ListCount{Name: l.Name, Count: len(l.Tokens)})
	}
	ui.WriteSummary(os.Stdout, ui.Summary{
		SymbolCount:   total,
		DisabledCount: disabled,
		Lists:         lists,
	})
}

func printFlagReference(w io.Writer) {
	fmt.Fprint(w, `Build-variable directives (KEY[-$(COND)] += values):

  SRC      base-joined source paths; "*.c" or "dir/*.c" globs a directory
  PATH     -I, base-joined; "." or "./" means the current base directory
  DEFINE   -D, not path-joined
  ASM      base-joined assembly source
  LDS      base-joined linker script
  MCFLAG   remainder taken as one raw string, not split
  ASFLAG   remainder taken as one raw string, not split
  CFLAG    remainder taken as one raw string, not split
  CPPFLAG  remainder taken as one raw string, not split
  LDFLAG   remainder taken as one raw string, not split
  LIB      -l, not path-joined
  LIBPATH  -L, base-joined

An optional "-$(COND)" or "-$(COND==VALUE)" suffix on KEY, or on "include",
gates the whole line on a symbol's resolved value.
`)
}

func main() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	defer glog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		if glog.V(1) {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
