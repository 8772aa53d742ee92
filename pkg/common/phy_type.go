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

package common

import "fmt"

type PhyType int

const (
	NA      PhyType = 0
	BOOL    PhyType = 1
	UINT8   PhyType = 2
	INT8    PhyType = 3
	UINT16  PhyType = 4
	INT16   PhyType = 5
	UINT32  PhyType = 6
	INT32   PhyType = 7
	UINT64  PhyType = 8
	INT64   PhyType = 9
	FLOAT   PhyType = 11
	DOUBLE  PhyType = 12
	VARCHAR PhyType = 200
	INT128  PhyType = 204
	DATE    PhyType = 207
	POINTER PhyType = 208
	DECIMAL PhyType = 209

	INVALID PhyType = 255
)

const (
	BoolSize    = 1
	Int8Size    = 1
	Int16Size   = 2
	Int32Size   = 4
	Int64Size   = 8
	Int128Size  = 16
	Float32Size = 4
	DateSize    = 4
	PointerSize = 8
	DecimalSize = 16
	VarcharSize = 16
)

var pTypeToStr = map[PhyType]string{
	NA:      "NA",
	BOOL:    "BOOL",
	UINT8:   "UINT8",
	INT8:    "INT8",
	UINT16:  "UINT16",
	INT16:   "INT16",
	UINT32:  "UINT32",
	INT32:   "INT32",
	UINT64:  "UINT64",
	INT64:   "INT64",
	FLOAT:   "FLOAT",
	DOUBLE:  "DOUBLE",
	VARCHAR: "VARCHAR",
	INT128:  "INT128",
	DATE:    "DATE",
	POINTER: "POINTER",
	DECIMAL: "DECIMAL",
	INVALID: "INVALID",
}

func (pt PhyType) String() string {
	if s, has := pTypeToStr[pt]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", int(pt)))
}

func (pt PhyType) Size() int {
	switch pt {
	case BOOL:
		return BoolSize
	case INT8, UINT8:
		return Int8Size
	case INT16, UINT16:
		return Int16Size
	case INT32, UINT32:
		return Int32Size
	case INT64, UINT64:
		return Int64Size
	case INT128:
		return Int128Size
	case FLOAT:
		return Float32Size
	case DOUBLE:
		return Int64Size
	case VARCHAR:
		return VarcharSize
	case DATE:
		return DateSize
	case POINTER:
		return PointerSize
	case DECIMAL:
		return DecimalSize
	default:
		panic("usp")
	}
}

func (pt PhyType) IsConstant() bool {
	return pt >= BOOL && pt <= DOUBLE ||
		pt == INT128 ||
		pt == DATE ||
		pt == POINTER ||
		pt == DECIMAL
}

func (pt PhyType) IsVarchar() bool {
	return pt == VARCHAR
}
