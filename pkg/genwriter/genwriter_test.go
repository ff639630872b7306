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

package genwriter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lm "github.com/sgl-org/lite-manager"
)

func TestWriteHeaderCommentsUnsetAndSkipsDisabled(t *testing.T) {
	view := lm.EmitView{
		Symbols: []lm.SymbolEmission{
			{Name: "FOO", HeaderLine: "#define FOO 1", MkLine: "FOO = y"},
			{Name: "BAR", HeaderComment: "// BAR is not set"},
			{Name: "BAZ", MkLine: "BAZ = n"},
		},
	}
	var buf strings.Builder
	require.NoError(t, WriteHeader(&buf, view))

	out := buf.String()
	assert.Contains(t, out, "__CONFIG_H__")
	assert.Contains(t, out, "#define FOO 1")
	assert.Contains(t, out, "// BAR is not set")
	assert.NotContains(t, out, "BAZ")
}

func TestWriteMkEmitsDefinesAndLists(t *testing.T) {
	view := lm.EmitView{
		Symbols: []lm.SymbolEmission{
			{Name: "FOO", MkLine: "FOO = y"},
			{Name: "BAR", HeaderComment: "// BAR is not set"},
		},
		Lists: []lm.VarListEmission{
			{Name: "C_SOURCE", Tokens: []string{"main.c", "drv.c"}},
		},
	}
	var buf strings.Builder
	require.NoError(t, WriteMk(&buf, view))

	out := buf.String()
	assert.Contains(t, out, "FOO = y")
	assert.Contains(t, out, "C_SOURCE := main.c drv.c")
	assert.NotContains(t, out, "BAR")
}

func TestWriteMakefileEmbedsOptions(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteMakefile(&buf, MakefileOptions{
		Project:  "demo",
		BuildDir: "build",
		Prefix:   "arm-none-eabi-",
		MkPath:   ".lm.mk",
	}))

	out := buf.String()
	assert.Contains(t, out, "PROJECT := demo")
	assert.Contains(t, out, "BUILD_DIR := build")
	assert.Contains(t, out, "CROSS_COMPILE := arm-none-eabi-")
	assert.Contains(t, out, "include .lm.mk")
}
