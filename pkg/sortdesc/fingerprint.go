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
	"fmt"
	"strings"

	"github.com/dchest/siphash"

	"github.com/plamb/sortdesc/pkg/common"
	"github.com/plamb/sortdesc/pkg/util"
)

// sortDescriptionDump renders the shape of the comparison: type, direction
// and nulls direction per column. Column names are deliberately left out so
// that structurally identical orderings over differently named columns
// share one fingerprint and one compiled comparator.
func sortDescriptionDump(d *SortDescription, types []common.LType) string {
	var sb strings.Builder
	for i := range d.Columns {
		if i != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(type: %s, direction: %d, nulls_direction: %d)",
			types[i], d.Columns[i].Direction, d.Columns[i].NullsDirection)
	}
	return sb.String()
}

// Fingerprint is the 128-bit digest of the description's comparison shape,
// used as the gate and cache key.
func (d *SortDescription) Fingerprint(types []common.LType) util.UInt128 {
	return fingerprintOfDump(sortDescriptionDump(d, types))
}

func fingerprintOfDump(dump string) util.UInt128 {
	lo, hi := siphash.Hash128(0, 0, util.UnsafeStringToBytes(dump))
	return util.UInt128{Lo: lo, Hi: hi}
}
