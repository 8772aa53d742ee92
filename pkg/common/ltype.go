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

import (
	"fmt"

	"github.com/plamb/sortdesc/pkg/util"
)

type LType struct {
	Id    LTypeId
	PTyp  PhyType
	Width int
	Scale int
}

func MakeLType(id LTypeId) LType {
	ret := LType{Id: id}
	ret.PTyp = ret.GetInternalType()
	return ret
}

func Null() LType {
	return MakeLType(LTID_NULL)
}

func BooleanType() LType {
	return MakeLType(LTID_BOOLEAN)
}

func TinyintType() LType {
	return MakeLType(LTID_TINYINT)
}

func SmallintType() LType {
	return MakeLType(LTID_SMALLINT)
}

func IntegerType() LType {
	return MakeLType(LTID_INTEGER)
}

func BigintType() LType {
	return MakeLType(LTID_BIGINT)
}

func UbigintType() LType {
	return MakeLType(LTID_UBIGINT)
}

func FloatType() LType {
	return MakeLType(LTID_FLOAT)
}

func DoubleType() LType {
	return MakeLType(LTID_DOUBLE)
}

func DateType() LType {
	return MakeLType(LTID_DATE)
}

func VarcharType() LType {
	return MakeLType(LTID_VARCHAR)
}

func HugeintType() LType {
	return MakeLType(LTID_HUGEINT)
}

func PointerType() LType {
	return MakeLType(LTID_POINTER)
}

func DecimalType(width, scale int) LType {
	ret := MakeLType(LTID_DECIMAL)
	ret.Width = width
	ret.Scale = scale
	return ret
}

func (lt LType) GetInternalType() PhyType {
	switch lt.Id {
	case LTID_INVALID:
		return INVALID
	case LTID_NULL:
		return NA
	case LTID_BOOLEAN:
		return BOOL
	case LTID_TINYINT:
		return INT8
	case LTID_SMALLINT:
		return INT16
	case LTID_INTEGER:
		return INT32
	case LTID_BIGINT:
		return INT64
	case LTID_DATE:
		return DATE
	case LTID_TIMESTAMP:
		return INT64
	case LTID_DECIMAL:
		return DECIMAL
	case LTID_FLOAT:
		return FLOAT
	case LTID_DOUBLE:
		return DOUBLE
	case LTID_VARCHAR:
		return VARCHAR
	case LTID_UTINYINT:
		return UINT8
	case LTID_USMALLINT:
		return UINT16
	case LTID_UINTEGER:
		return UINT32
	case LTID_UBIGINT:
		return UINT64
	case LTID_HUGEINT:
		return INT128
	case LTID_POINTER:
		return POINTER
	default:
		panic(fmt.Sprintf("usp logical type %d", int(lt.Id)))
	}
}

func (lt LType) IsNumeric() bool {
	switch lt.Id {
	case LTID_TINYINT, LTID_SMALLINT, LTID_INTEGER, LTID_BIGINT,
		LTID_UTINYINT, LTID_USMALLINT, LTID_UINTEGER, LTID_UBIGINT,
		LTID_FLOAT, LTID_DOUBLE, LTID_DECIMAL, LTID_HUGEINT:
		return true
	default:
		return false
	}
}

func (lt LType) IsIntegral() bool {
	switch lt.Id {
	case LTID_TINYINT, LTID_SMALLINT, LTID_INTEGER, LTID_BIGINT,
		LTID_UTINYINT, LTID_USMALLINT, LTID_UINTEGER, LTID_UBIGINT:
		return true
	default:
		return false
	}
}

func (lt LType) Equal(o LType) bool {
	if lt.Id != o.Id {
		return false
	}
	if lt.Id == LTID_DECIMAL {
		return lt.Width == o.Width && lt.Scale == o.Scale
	}
	return true
}

func (lt LType) String() string {
	if lt.Id == LTID_DECIMAL {
		return fmt.Sprintf("%v(%d,%d)", lt.PTyp, lt.Width, lt.Scale)
	}
	return fmt.Sprintf("%v", lt.PTyp)
}

func (lt LType) Serialize(serial util.Serialize) error {
	err := util.Write[int](int(lt.Id), serial)
	if err != nil {
		return err
	}
	err = util.Write[int](lt.Width, serial)
	if err != nil {
		return err
	}
	err = util.Write[int](lt.Scale, serial)
	if err != nil {
		return err
	}
	return err
}

func DeserializeLType(deserial util.Deserialize) (LType, error) {
	id := 0
	width := 0
	scale := 0
	err := util.Read[int](&id, deserial)
	if err != nil {
		return LType{}, err
	}
	err = util.Read[int](&width, deserial)
	if err != nil {
		return LType{}, err
	}
	err = util.Read[int](&scale, deserial)
	if err != nil {
		return LType{}, err
	}

	ret := LType{
		Id:    LTypeId(id),
		Width: width,
		Scale: scale,
	}
	ret.PTyp = ret.GetInternalType()
	return ret, err
}

func CopyLTypes(types ...LType) []LType {
	ret := make([]LType, 0, len(types))
	ret = append(ret, types...)
	return ret
}
