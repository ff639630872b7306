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

package lm

import "strings"

// VarKey identifies one of the build-variable directives a declaration
// file may use (spec.md §4.5's KEY table).
type VarKey string

// The twelve build-variable directive keys.
const (
	KeySRC     VarKey = "SRC"
	KeyPATH    VarKey = "PATH"
	KeyDEFINE  VarKey = "DEFINE"
	KeyASM     VarKey = "ASM"
	KeyLDS     VarKey = "LDS"
	KeyMCFLAG  VarKey = "MCFLAG"
	KeyASFLAG  VarKey = "ASFLAG"
	KeyCFLAG   VarKey = "CFLAG"
	KeyCPPFLAG VarKey = "CPPFLAG"
	KeyLDFLAG  VarKey = "LDFLAG"
	KeyLIB     VarKey = "LIB"
	KeyLIBPATH VarKey = "LIBPATH"
)

// directiveKeys is the set of the twelve recognized keys, used to
// validate a KEY token during parsing.
var directiveKeys = map[VarKey]bool{
	KeySRC: true, KeyPATH: true, KeyDEFINE: true, KeyASM: true, KeyLDS: true,
	KeyMCFLAG: true, KeyASFLAG: true, KeyCFLAG: true, KeyCPPFLAG: true,
	KeyLDFLAG: true, KeyLIB: true, KeyLIBPATH: true,
}

// VarList is an ordered multiset of strings: order is source order across
// the include tree, duplicates are retained (spec.md §3).
type VarList []string

// VarLists holds the emitted build-variable lists keyed by their fixed
// emitter names (spec.md §4.7). C_OBJECT has no directive of its own: it
// is derived from C_SOURCE at emission time by replacing each ".c" source
// with a ".o" object, the conventional Make pairing; it is not one of the
// twelve lists accumulated during parsing.
type VarLists struct {
	CSource   VarList // C_SOURCE  (from SRC)
	CPath     VarList // C_PATH    (from PATH)
	CDefine   VarList // C_DEFINE  (from DEFINE)
	AsmSource VarList // ASM_SOURCE(from ASM)
	LdsSource VarList // LDS_SOURCE(from LDS)
	McFlag    VarList // MC_FLAG   (from MCFLAG)
	AsFlag    VarList // AS_FLAG   (from ASFLAG)
	CFlag     VarList // C_FLAG    (from CFLAG)
	CppFlag   VarList // CPP_FLAG  (from CPPFLAG)
	LdFlag    VarList // LD_FLAG   (from LDFLAG)
	LibName   VarList // LIB_NAME  (from LIB)
	LibPath   VarList // LIB_PATH  (from LIBPATH)
}

// listFor returns a pointer to the list backing key, so the parser can
// append to it in place.
func (v *VarLists) listFor(key VarKey) *VarList {
	switch key {
	case KeySRC:
		return &v.CSource
	case KeyPATH:
		return &v.CPath
	case KeyDEFINE:
		return &v.CDefine
	case KeyASM:
		return &v.AsmSource
	case KeyLDS:
		return &v.LdsSource
	case KeyMCFLAG:
		return &v.McFlag
	case KeyASFLAG:
		return &v.AsFlag
	case KeyCFLAG:
		return &v.CFlag
	case KeyCPPFLAG:
		return &v.CppFlag
	case KeyLDFLAG:
		return &v.LdFlag
	case KeyLIB:
		return &v.LibName
	case KeyLIBPATH:
		return &v.LibPath
	}
	return nil
}

// CObject derives the C_OBJECT list from C_SOURCE: each ".c" source
// becomes a same-named ".o" object, matching the conventional pairing a
// Makefile expects ($(CC) ... -c -o $@ $<).
func (v *VarLists) CObject() VarList {
	objs := make(VarList, 0, len(v.CSource))
	for _, src := range v.CSource {
		objs = append(objs, strings.TrimSuffix(src, ".c")+".o")
	}
	return objs
}

// Names returns the thirteen (twelve accumulated + one derived) emitter
// variable names in the fixed order spec.md §4.7 lists them, paired with
// their current contents.
func (v *VarLists) Names() []struct {
	Name string
	List VarList
} {
	return []struct {
		Name string
		List VarList
	}{
		{"C_SOURCE", v.CSource},
		{"C_OBJECT", v.CObject()},
		{"C_PATH", v.CPath},
		{"C_DEFINE", v.CDefine},
		{"ASM_SOURCE", v.AsmSource},
		{"LDS_SOURCE", v.LdsSource},
		{"MC_FLAG", v.McFlag},
		{"AS_FLAG", v.AsFlag},
		{"C_FLAG", v.CFlag},
		{"CPP_FLAG", v.CppFlag},
		{"LD_FLAG", v.LdFlag},
		{"LIB_NAME", v.LibName},
		{"LIB_PATH", v.LibPath},
	}
}
