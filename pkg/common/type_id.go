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

type LTypeId int

const (
	LTID_INVALID   LTypeId = 0
	LTID_NULL      LTypeId = 1
	LTID_BOOLEAN   LTypeId = 10
	LTID_TINYINT   LTypeId = 11
	LTID_SMALLINT  LTypeId = 12
	LTID_INTEGER   LTypeId = 13
	LTID_BIGINT    LTypeId = 14
	LTID_DATE      LTypeId = 15
	LTID_TIMESTAMP LTypeId = 19
	LTID_DECIMAL   LTypeId = 21
	LTID_FLOAT     LTypeId = 22
	LTID_DOUBLE    LTypeId = 23
	LTID_VARCHAR   LTypeId = 25
	LTID_INTERVAL  LTypeId = 27
	LTID_UTINYINT  LTypeId = 28
	LTID_USMALLINT LTypeId = 29
	LTID_UINTEGER  LTypeId = 30
	LTID_UBIGINT   LTypeId = 31
	LTID_HUGEINT   LTypeId = 50
	LTID_POINTER   LTypeId = 51
)

var lTypeIdToStr = map[LTypeId]string{
	LTID_INVALID:   "INVALID",
	LTID_NULL:      "NULL",
	LTID_BOOLEAN:   "BOOLEAN",
	LTID_TINYINT:   "TINYINT",
	LTID_SMALLINT:  "SMALLINT",
	LTID_INTEGER:   "INTEGER",
	LTID_BIGINT:    "BIGINT",
	LTID_DATE:      "DATE",
	LTID_TIMESTAMP: "TIMESTAMP",
	LTID_DECIMAL:   "DECIMAL",
	LTID_FLOAT:     "FLOAT",
	LTID_DOUBLE:    "DOUBLE",
	LTID_VARCHAR:   "VARCHAR",
	LTID_INTERVAL:  "INTERVAL",
	LTID_UTINYINT:  "UTINYINT",
	LTID_USMALLINT: "USMALLINT",
	LTID_UINTEGER:  "UINTEGER",
	LTID_UBIGINT:   "UBIGINT",
	LTID_HUGEINT:   "HUGEINT",
	LTID_POINTER:   "POINTER",
}

func (id LTypeId) String() string {
	if s, has := lTypeIdToStr[id]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", int(id)))
}
