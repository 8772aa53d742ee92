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
	"math"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/plamb/sortdesc/pkg/chunk"
	"github.com/plamb/sortdesc/pkg/common"
)

const (
	moduleBaseCost   = 192
	moduleColumnCost = 96
)

type cellCompare func(lhs, rhs *chunk.Value) int

// NewComparator fuses one kernel per column into a single row comparator.
// The second result is the byte-size estimate of the equivalent generated
// module, used for cache accounting.
func NewComparator(specs []ColumnSpec) (CompareFunc, uint64, error) {
	kernels := make([]cellCompare, len(specs))
	for i, spec := range specs {
		kernel, err := columnComparator(spec)
		if err != nil {
			return nil, 0, err
		}
		kernels[i] = kernel
	}
	size := uint64(moduleBaseCost + moduleColumnCost*len(specs))

	fn := func(lhs, rhs []chunk.Value) int {
		for i := range kernels {
			if res := kernels[i](&lhs[i], &rhs[i]); res != 0 {
				return res
			}
		}
		return 0
	}
	return fn, size, nil
}

func columnComparator(spec ColumnSpec) (cellCompare, error) {
	valueCmp, err := valueComparator(spec)
	if err != nil {
		return nil, err
	}
	direction := int(spec.Direction)
	nullsDirection := int(spec.NullsDirection)

	return func(lhs, rhs *chunk.Value) int {
		if lhs.IsNull || rhs.IsNull {
			if lhs.IsNull && rhs.IsNull {
				return 0
			}
			if lhs.IsNull {
				return nullsDirection
			}
			return -nullsDirection
		}
		return direction * valueCmp(lhs, rhs)
	}, nil
}

func valueComparator(spec ColumnSpec) (cellCompare, error) {
	switch spec.Typ.GetInternalType() {
	case common.BOOL:
		return compareBool, nil
	case common.INT8, common.INT16, common.INT32, common.INT64:
		return compareInt64, nil
	case common.UINT8, common.UINT16, common.UINT32, common.UINT64:
		return compareUint64, nil
	case common.FLOAT, common.DOUBLE:
		return compareFloat64, nil
	case common.DATE:
		return compareDate, nil
	case common.INT128:
		return compareHugeint, nil
	case common.DECIMAL:
		return compareDecimal, nil
	case common.VARCHAR:
		if spec.Locale == "" {
			return compareString, nil
		}
		return collatedComparator(spec.Locale)
	default:
		return nil, fmt.Errorf("no comparator kernel for type %s", spec.Typ)
	}
}

func compareBool(lhs, rhs *chunk.Value) int {
	if lhs.Bool == rhs.Bool {
		return 0
	}
	if rhs.Bool {
		return -1
	}
	return 1
}

func compareInt64(lhs, rhs *chunk.Value) int {
	switch {
	case lhs.I64 < rhs.I64:
		return -1
	case lhs.I64 > rhs.I64:
		return 1
	default:
		return 0
	}
}

func compareUint64(lhs, rhs *chunk.Value) int {
	switch {
	case lhs.U64 < rhs.U64:
		return -1
	case lhs.U64 > rhs.U64:
		return 1
	default:
		return 0
	}
}

// NaN sorts after every other value and equals itself, which keeps the
// comparator a total order.
func compareFloat64(lhs, rhs *chunk.Value) int {
	lNan := math.IsNaN(lhs.F64)
	rNan := math.IsNaN(rhs.F64)
	if lNan || rNan {
		if lNan && rNan {
			return 0
		}
		if lNan {
			return 1
		}
		return -1
	}
	switch {
	case lhs.F64 < rhs.F64:
		return -1
	case lhs.F64 > rhs.F64:
		return 1
	default:
		return 0
	}
}

func compareDate(lhs, rhs *chunk.Value) int {
	l := lhs.DateEpochDay()
	r := rhs.DateEpochDay()
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func compareHugeint(lhs, rhs *chunk.Value) int {
	switch {
	case lhs.I64 < rhs.I64:
		return -1
	case lhs.I64 > rhs.I64:
		return 1
	case uint64(lhs.I64_1) < uint64(rhs.I64_1):
		return -1
	case uint64(lhs.I64_1) > uint64(rhs.I64_1):
		return 1
	default:
		return 0
	}
}

func compareDecimal(lhs, rhs *chunk.Value) int {
	l, err := lhs.Decimal()
	if err != nil {
		panic(err)
	}
	r, err := rhs.Decimal()
	if err != nil {
		panic(err)
	}
	return l.Cmp(r)
}

func compareString(lhs, rhs *chunk.Value) int {
	return strings.Compare(lhs.Str, rhs.Str)
}

func collatedComparator(locale string) (cellCompare, error) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("bad collation locale %q: %w", locale, err)
	}
	coll := collate.New(tag)
	return func(lhs, rhs *chunk.Value) int {
		return coll.CompareString(lhs.Str, rhs.Str)
	}, nil
}
