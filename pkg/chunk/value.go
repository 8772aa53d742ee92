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

package chunk

import (
	"fmt"
	"math/big"
	"time"

	"github.com/govalues/decimal"

	"github.com/plamb/sortdesc/pkg/common"
)

// Value is a single row cell. The active field depends on Typ.
type Value struct {
	Typ    common.LType
	IsNull bool
	//value
	Bool  bool
	I64   int64
	I64_1 int64
	U64   uint64
	F64   float64
	Str   string
}

func NullValue(typ common.LType) Value {
	return Value{Typ: typ, IsNull: true}
}

func IntegerValue(v int64) Value {
	return Value{Typ: common.IntegerType(), I64: v}
}

func BigintValue(v int64) Value {
	return Value{Typ: common.BigintType(), I64: v}
}

func UbigintValue(v uint64) Value {
	return Value{Typ: common.UbigintType(), U64: v}
}

func DoubleValue(v float64) Value {
	return Value{Typ: common.DoubleType(), F64: v}
}

func FloatValue(v float32) Value {
	return Value{Typ: common.FloatType(), F64: float64(v)}
}

func BooleanValue(v bool) Value {
	return Value{Typ: common.BooleanType(), Bool: v}
}

func VarcharValue(s string) Value {
	return Value{Typ: common.VarcharType(), Str: s}
}

func DateValue(year, month, day int) Value {
	return Value{
		Typ:   common.DateType(),
		I64:   int64(year),
		I64_1: int64(month),
		U64:   uint64(day),
	}
}

// DecimalValue carries the coefficient split the way decimal.NewFromInt64
// expects: whole units in I64, fractional part in I64_1, scale on the type.
func DecimalValue(whole, frac int64, width, scale int) Value {
	return Value{Typ: common.DecimalType(width, scale), I64: whole, I64_1: frac}
}

func HugeintValue(hi, lo int64) Value {
	return Value{Typ: common.HugeintType(), I64: hi, I64_1: lo}
}

func (val Value) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromInt64(val.I64, val.I64_1, val.Typ.Scale)
}

func (val Value) DateEpochDay() int64 {
	dat := time.Date(int(val.I64), time.Month(val.I64_1), int(val.U64),
		0, 0, 0, 0, time.UTC)
	return dat.Unix() / (24 * 3600)
}

func (val Value) String() string {
	if val.IsNull {
		return "NULL"
	}
	switch val.Typ.Id {
	case common.LTID_BOOLEAN:
		return fmt.Sprintf("%v", val.Bool)
	case common.LTID_TINYINT, common.LTID_SMALLINT,
		common.LTID_INTEGER, common.LTID_BIGINT:
		return fmt.Sprintf("%d", val.I64)
	case common.LTID_UTINYINT, common.LTID_USMALLINT,
		common.LTID_UINTEGER, common.LTID_UBIGINT:
		return fmt.Sprintf("%d", val.U64)
	case common.LTID_FLOAT, common.LTID_DOUBLE:
		return fmt.Sprintf("%v", val.F64)
	case common.LTID_VARCHAR:
		return val.Str
	case common.LTID_DECIMAL:
		d, err := val.Decimal()
		if err != nil {
			panic(err)
		}
		return d.String()
	case common.LTID_DATE:
		dat := time.Date(int(val.I64), time.Month(val.I64_1), int(val.U64),
			0, 0, 0, 0, time.UTC)
		return dat.Format(time.DateOnly)
	case common.LTID_HUGEINT:
		// the low word is an unsigned limb, only the high word carries sign
		h := big.NewInt(val.I64)
		l := new(big.Int).SetUint64(uint64(val.I64_1))
		h.Lsh(h, 64)
		h.Add(h, l)
		return h.String()
	default:
		panic("usp")
	}
}
