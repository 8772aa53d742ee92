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

// Package sortdesc models multi-column sort orders, their binary wire
// format, and the machinery that compiles specialized row comparators for
// frequently used orders.
package sortdesc

import (
	"github.com/plamb/sortdesc/pkg/common"
	"github.com/plamb/sortdesc/pkg/jit"
)

const (
	Ascending  int8 = 1
	Descending int8 = -1

	NullsFirst int8 = -1
	NullsLast  int8 = 1
)

// DefaultMinCountToCompile is how many uses a sort order needs before its
// comparator is worth generating native code for.
const DefaultMinCountToCompile = 3

// SortColumnDescription is one ordering clause.
type SortColumnDescription struct {
	ColumnName     string
	Direction      int8
	NullsDirection int8
	Collator       *Collator
	WithFill       bool
}

func (desc *SortColumnDescription) Equal(o *SortColumnDescription) bool {
	if desc.ColumnName != o.ColumnName ||
		desc.Direction != o.Direction ||
		desc.NullsDirection != o.NullsDirection ||
		desc.WithFill != o.WithFill {
		return false
	}
	if (desc.Collator == nil) != (o.Collator == nil) {
		return false
	}
	if desc.Collator != nil && desc.Collator.Locale() != o.Collator.Locale() {
		return false
	}
	return true
}

// SortDescription is an ordered sequence of column clauses. The order of
// Columns is the sort key precedence.
type SortDescription struct {
	Columns []SortColumnDescription

	CompileSortDescription           bool
	MinCountToCompileSortDescription uint64

	// CompiledSortDescription is the raw callable extracted from the
	// holder, nil until compilation happened.
	CompiledSortDescription jit.CompareFunc
	compiledHolder          *CompiledSortDescriptionFunctionHolder
}

func NewSortDescription(columns ...SortColumnDescription) *SortDescription {
	return &SortDescription{
		Columns:                          columns,
		CompileSortDescription:           true,
		MinCountToCompileSortDescription: DefaultMinCountToCompile,
	}
}

func (d *SortDescription) Size() int {
	return len(d.Columns)
}

func (d *SortDescription) Empty() bool {
	return len(d.Columns) == 0
}

func (d *SortDescription) Equal(o *SortDescription) bool {
	if len(d.Columns) != len(o.Columns) {
		return false
	}
	for i := range d.Columns {
		if !d.Columns[i].Equal(&o.Columns[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a leading run of d.
func (d *SortDescription) HasPrefix(prefix *SortDescription) bool {
	if prefix.Empty() {
		return true
	}
	if prefix.Size() > d.Size() {
		return false
	}
	for i := range prefix.Columns {
		if !d.Columns[i].Equal(&prefix.Columns[i]) {
			return false
		}
	}
	return true
}

// CommonPrefix returns the longest shared leading run of lhs and rhs. The
// result holds lhs's own clauses, so collators and flags attached to lhs
// survive in it.
func CommonPrefix(lhs, rhs *SortDescription) *SortDescription {
	i := 0
	for ; i < min(lhs.Size(), rhs.Size()); i++ {
		if !lhs.Columns[i].Equal(&rhs.Columns[i]) {
			break
		}
	}
	res := NewSortDescription()
	res.Columns = append(res.Columns, lhs.Columns[:i]...)
	res.CompileSortDescription = lhs.CompileSortDescription
	res.MinCountToCompileSortDescription = lhs.MinCountToCompileSortDescription
	return res
}

// BuildComparator returns an interpreted comparator for the description.
// This is the fallback path for descriptions that never reach the compile
// threshold; no module is generated and nothing is cached.
func (d *SortDescription) BuildComparator(types []common.LType) (jit.CompareFunc, error) {
	fn, _, err := jit.NewComparator(columnSpecs(d, types))
	return fn, err
}

func columnSpecs(d *SortDescription, types []common.LType) []jit.ColumnSpec {
	specs := make([]jit.ColumnSpec, len(d.Columns))
	for i := range d.Columns {
		specs[i] = jit.ColumnSpec{
			Typ:            types[i],
			Direction:      d.Columns[i].Direction,
			NullsDirection: d.Columns[i].NullsDirection,
		}
		if d.Columns[i].Collator != nil {
			specs[i].Locale = d.Columns[i].Collator.Locale()
		}
	}
	return specs
}
