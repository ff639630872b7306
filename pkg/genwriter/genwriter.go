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

// Package genwriter mechanically renders the resolved EmitView into
// lite-manager's three output artifacts: config.h, .lm.mk, and the
// optional top-level Makefile. It knows nothing about resolution — every
// decision about what a value means was already made by the core's
// emit.go (spec.md §4.7's contract boundary).
package genwriter

import (
	"io"
	"strings"
	"text/template"

	lm "github.com/sgl-org/lite-manager"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

const headerTmplText = `#ifndef __CONFIG_H__
#define __CONFIG_H__

{{range .Symbols -}}
{{if .HeaderComment}}{{.HeaderComment}}
{{else if .HeaderLine}}{{.HeaderLine}}
{{end -}}
{{end}}
#endif /* __CONFIG_H__ */
`

const mkTmplText = `{{range .Symbols -}}
{{if .MkLine}}{{.MkLine}}
{{end -}}
{{end -}}
{{range .Lists}}{{.Name}} := {{join .Tokens " "}}
{{end -}}
`

// MakefileOptions carries the --project/--build/--prefix values the
// generated top-level Makefile embeds, plus the .lm.mk path it includes.
type MakefileOptions struct {
	Project  string
	BuildDir string
	Prefix   string
	MkPath   string
}

const makefileTmplText = `# Generated by lite-manager. Do not edit by hand.
PROJECT := {{.Project}}
BUILD_DIR := {{.BuildDir}}
CROSS_COMPILE := {{.Prefix}}

CC := $(CROSS_COMPILE)gcc
AS := $(CROSS_COMPILE)as
LD := $(CROSS_COMPILE)ld

include {{.MkPath}}

all: $(BUILD_DIR)/$(PROJECT)

$(BUILD_DIR)/$(PROJECT): $(C_OBJECT)
	$(CC) $(LD_FLAG) -o $@ $^ $(LIB_PATH) $(LIB_NAME)

$(BUILD_DIR)/%.o: %.c
	$(CC) $(C_FLAG) $(CPP_FLAG) $(C_DEFINE) $(C_PATH) -c -o $@ $<

clean:
	$(RM) -r $(BUILD_DIR)
`

var (
	headerTmpl   = template.Must(template.New("header").Funcs(templateFuncs).Parse(headerTmplText))
	mkTmpl       = template.Must(template.New("mk").Funcs(templateFuncs).Parse(mkTmplText))
	makefileTmpl = template.Must(template.New("makefile").Funcs(templateFuncs).Parse(makefileTmplText))
)

// WriteHeader renders config.h.
func WriteHeader(w io.Writer, view lm.EmitView) error {
	return headerTmpl.Execute(w, view)
}

// WriteMk renders .lm.mk.
func WriteMk(w io.Writer, view lm.EmitView) error {
	return mkTmpl.Execute(w, view)
}

// WriteMakefile renders the optional top-level Makefile for --gen.
func WriteMakefile(w io.Writer, opts MakefileOptions) error {
	return makefileTmpl.Execute(w, opts)
}
