// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"strings"
	"sync"
)

type fakeModule struct {
	id     int
	label  string
	source string
}

// fakeCompiler records compile and destroy calls. Sources containing
// "BROKEN" and labels listed in fail do not compile.
type fakeCompiler struct {
	fail map[string]bool

	mu        sync.Mutex
	next      int
	compiled  []*fakeModule
	destroyed map[*fakeModule]int
}

func newFakeCompiler() *fakeCompiler {
	return &fakeCompiler{destroyed: make(map[*fakeModule]int)}
}

func (c *fakeCompiler) Compile(label, source string) (Module, error) {
	if strings.Contains(source, "BROKEN") || c.fail[label] {
		return nil, errors.New("syntax error")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	m := &fakeModule{id: c.next, label: label, source: source}
	c.compiled = append(c.compiled, m)
	return m, nil
}

func (c *fakeCompiler) Destroy(m Module) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed[m.(*fakeModule)]++
	return nil
}

func (c *fakeCompiler) compileCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.compiled)
}

func (c *fakeCompiler) destroyCount(m Module) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed[m.(*fakeModule)]
}

func (c *fakeCompiler) totalDestroys() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.destroyed {
		n += v
	}
	return n
}
