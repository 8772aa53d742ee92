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

package sortdesc

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/plamb/sortdesc/pkg/common"
	"github.com/plamb/sortdesc/pkg/expcache"
	"github.com/plamb/sortdesc/pkg/jit"
	"github.com/plamb/sortdesc/pkg/util"
)

// CompiledSortDescriptionFunctionHolder keeps a generated comparator module
// alive. It is shared between the compiled-expression cache and every
// description that resolved it; the module is deleted exactly once, when
// the last reference goes away.
type CompiledSortDescriptionFunctionHolder struct {
	compiledSortDescriptionFunction jit.CompiledSortDescriptionFunction
	codegen                         *jit.CodeGenContext
	refs                            atomic.Int64
}

var _ expcache.Entry = (*CompiledSortDescriptionFunctionHolder)(nil)

func newCompiledSortDescriptionFunctionHolder(
	fn jit.CompiledSortDescriptionFunction,
	codegen *jit.CodeGenContext) *CompiledSortDescriptionFunctionHolder {
	holder := &CompiledSortDescriptionFunctionHolder{
		compiledSortDescriptionFunction: fn,
		codegen:                         codegen,
	}
	holder.refs.Store(1)
	return holder
}

func (holder *CompiledSortDescriptionFunctionHolder) SizeBytes() uint64 {
	return holder.compiledSortDescriptionFunction.CompiledModule.Size
}

func (holder *CompiledSortDescriptionFunctionHolder) Retain() {
	holder.refs.Add(1)
}

func (holder *CompiledSortDescriptionFunctionHolder) Release() {
	refs := holder.refs.Add(-1)
	if refs > 0 {
		return
	}
	if refs < 0 {
		panic("release of released comparator holder")
	}
	err := holder.codegen.DeleteCompiledModule(
		holder.compiledSortDescriptionFunction.CompiledModule)
	if err != nil {
		util.Error("delete compiled module failed", zap.Error(err))
	}
}

// CompileService gates and orchestrates comparator compilation. One
// instance is owned by the engine process and handed to every call site;
// there are no hidden singletons.
type CompileService struct {
	mu       sync.Mutex
	counters map[util.UInt128]uint64

	codegen *jit.CodeGenContext
	// cache may be nil when shared caching is disabled; descriptions then
	// own their compiled comparator exclusively.
	cache *expcache.Cache
}

func NewCompileService(codegen *jit.CodeGenContext, cache *expcache.Cache) *CompileService {
	return &CompileService{
		counters: make(map[util.UInt128]uint64),
		codegen:  codegen,
		cache:    cache,
	}
}

// CompileSortDescriptionIfNeeded compiles the description's comparator once
// the same comparison shape has been admitted often enough. Ineligibility
// of any kind is not an error: the description simply stays on the
// interpreted path. increaseCompileAttempts controls whether this call
// counts toward the threshold; probing call sites pass false.
func (s *CompileService) CompileSortDescriptionIfNeeded(
	d *SortDescription,
	types []common.LType,
	increaseCompileAttempts bool) error {
	if d.CompiledSortDescription != nil {
		return nil
	}
	if !d.CompileSortDescription || len(types) == 0 {
		return nil
	}
	for _, typ := range types {
		if !common.IsComparatorCompilable(typ) || !common.CanBeNativeType(typ) {
			return nil
		}
	}

	dump := sortDescriptionDump(d, types)
	key := fingerprintOfDump(dump)

	s.mu.Lock()
	counter := s.counters[key]
	if counter < d.MinCountToCompileSortDescription {
		if increaseCompileAttempts {
			counter++
			s.counters[key] = counter
		}
		if counter < d.MinCountToCompileSortDescription {
			s.mu.Unlock()
			return nil
		}
	}
	s.mu.Unlock()

	specs := columnSpecs(d, types)

	var holder *CompiledSortDescriptionFunctionHolder
	if s.cache != nil {
		entry, err := s.cache.GetOrSet(key, func() (expcache.Entry, error) {
			util.Info("compile sort description", zap.String("dump", dump))
			compiled, err := s.codegen.CompileSortDescription(specs, dump)
			if err != nil {
				return nil, err
			}
			return newCompiledSortDescriptionFunctionHolder(compiled, s.codegen), nil
		})
		if err != nil {
			return err
		}
		holder = entry.(*CompiledSortDescriptionFunctionHolder)
	} else {
		util.Info("compile sort description", zap.String("dump", dump))
		compiled, err := s.codegen.CompileSortDescription(specs, dump)
		if err != nil {
			return err
		}
		holder = newCompiledSortDescriptionFunctionHolder(compiled, s.codegen)
	}

	d.CompiledSortDescription = holder.compiledSortDescriptionFunction.ComparatorFunc
	d.compiledHolder = holder
	return nil
}

// ReleaseCompiled drops the description's reference to its compiled
// comparator. The generated module stays alive while the cache or other
// descriptions still hold it.
func (d *SortDescription) ReleaseCompiled() {
	if d.compiledHolder != nil {
		d.compiledHolder.Release()
		d.compiledHolder = nil
		d.CompiledSortDescription = nil
	}
}

// useCount is a test hook exposing the gate counter for a fingerprint.
func (s *CompileService) useCount(key util.UInt128) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key]
}
