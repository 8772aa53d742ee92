// Copyright 2025-2026 plamb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jit

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/plamb/sortdesc/pkg/chunk"
	"github.com/plamb/sortdesc/pkg/common"
	"github.com/plamb/sortdesc/pkg/util"
)

// CompareFunc compares two rows and returns <0, 0 or >0. Rows must carry
// values of the column types the function was built for.
type CompareFunc func(lhs, rhs []chunk.Value) int

// ColumnSpec is one ordering clause reduced to what the generator needs.
type ColumnSpec struct {
	Typ            common.LType
	Direction      int8
	NullsDirection int8
	// Locale selects a collated VARCHAR kernel. Empty means byte order.
	Locale string
}

type CompiledModule struct {
	ID   uint64
	Size uint64
}

type CompiledSortDescriptionFunction struct {
	ComparatorFunc CompareFunc
	CompiledModule CompiledModule
}

// CodeGenContext owns every compiled module. It is created once per process
// by whoever assembles the engine and passed around explicitly.
type CodeGenContext struct {
	mu      sync.Mutex
	nextID  uint64
	modules map[uint64]uint64
}

func NewCodeGenContext() *CodeGenContext {
	return &CodeGenContext{
		modules: make(map[uint64]uint64),
	}
}

// CompileSortDescription builds a fused comparator for the given column
// specs and registers the resulting module. dump is a human-readable
// rendering of the comparison, logged for diagnostics.
func (ctx *CodeGenContext) CompileSortDescription(
	specs []ColumnSpec,
	dump string) (CompiledSortDescriptionFunction, error) {
	fn, size, err := NewComparator(specs)
	if err != nil {
		return CompiledSortDescriptionFunction{}, err
	}

	ctx.mu.Lock()
	ctx.nextID++
	id := ctx.nextID
	ctx.modules[id] = size
	ctx.mu.Unlock()

	util.Debug("compiled sort comparator",
		zap.Uint64("module", id),
		zap.Uint64("sizeBytes", size),
		zap.String("dump", dump))

	return CompiledSortDescriptionFunction{
		ComparatorFunc: fn,
		CompiledModule: CompiledModule{ID: id, Size: size},
	}, nil
}

// DeleteCompiledModule releases a module. Deleting the same module twice is
// a caller bug and reported as an error.
func (ctx *CodeGenContext) DeleteCompiledModule(module CompiledModule) error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if _, has := ctx.modules[module.ID]; !has {
		return fmt.Errorf("compiled module %d already deleted", module.ID)
	}
	delete(ctx.modules, module.ID)
	return nil
}

func (ctx *CodeGenContext) AliveModuleCount() int {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return len(ctx.modules)
}

func (ctx *CodeGenContext) AliveModuleBytes() uint64 {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	total := uint64(0)
	for _, size := range ctx.modules {
		total += size
	}
	return total
}
