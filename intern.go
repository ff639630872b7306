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

import "sync"

// nameTable interns symbol names so that repeated lookups (cache keys,
// depends-expression substitution) compare cheap, stable strings instead of
// fresh allocations from the parser.
type nameTable struct {
	mu sync.Mutex
	m  map[string]string
}

var names = &nameTable{
	m: make(map[string]string),
}

func intern(s string) string {
	names.mu.Lock()
	v, ok := names.m[s]
	if ok {
		names.mu.Unlock()
		return v
	}
	names.m[s] = s
	names.mu.Unlock()
	return s
}

