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

	"github.com/plamb/sortdesc/pkg/util"
)

// Wire format, per description:
//
//	varint          column count
//	per column:     varint-prefixed column name
//	                1 flags byte
//	                varint-prefixed locale, only when flagHasCollator is set
//
// There is no version field. Evolution can only claim spare flag bits or
// introduce a new message at a higher protocol layer.
const (
	flagDirectionAscending uint8 = 1 << 0
	flagNullsLast          uint8 = 1 << 1
	flagHasCollator        uint8 = 1 << 2
	flagWithFill           uint8 = 1 << 3
)

// UnsupportedFeatureError reports a description feature that has no slot in
// the wire format.
type UnsupportedFeatureError struct {
	Feature string
	Column  int
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s is not supported in serialized sort description (column %d)",
		e.Feature, e.Column)
}

// Serialize writes the description. Descriptions with WITH FILL columns are
// rejected: the fill value state that feature needs cannot be represented.
func (d *SortDescription) Serialize(serial util.Serialize) error {
	err := util.WriteVarUint(uint64(len(d.Columns)), serial)
	if err != nil {
		return err
	}
	for i := range d.Columns {
		desc := &d.Columns[i]
		if desc.WithFill {
			return &UnsupportedFeatureError{Feature: "WITH FILL", Column: i}
		}

		err = util.WriteStringBinary(desc.ColumnName, serial)
		if err != nil {
			return err
		}

		flags := uint8(0)
		if desc.Direction > 0 {
			flags |= flagDirectionAscending
		}
		if desc.NullsDirection > 0 {
			flags |= flagNullsLast
		}
		if desc.Collator != nil {
			flags |= flagHasCollator
		}
		err = util.Write[uint8](flags, serial)
		if err != nil {
			return err
		}

		if desc.Collator != nil {
			err = util.WriteStringBinary(desc.Collator.Locale(), serial)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func DeserializeSortDescription(deserial util.Deserialize) (*SortDescription, error) {
	var size uint64
	err := util.ReadVarUint(&size, deserial)
	if err != nil {
		return nil, err
	}

	d := NewSortDescription()
	// the count comes off the wire; grow the slice as columns actually
	// materialize so a corrupt count fails on the first short read
	for i := 0; uint64(i) < size; i++ {
		d.Columns = append(d.Columns, SortColumnDescription{})
		desc := &d.Columns[i]
		desc.ColumnName, err = util.ReadStringBinary(deserial)
		if err != nil {
			return nil, err
		}

		var flags uint8
		err = util.Read[uint8](&flags, deserial)
		if err != nil {
			return nil, err
		}

		if util.FlagIsSet(flags, flagDirectionAscending) {
			desc.Direction = Ascending
		} else {
			desc.Direction = Descending
		}
		if util.FlagIsSet(flags, flagNullsLast) {
			desc.NullsDirection = NullsLast
		} else {
			desc.NullsDirection = NullsFirst
		}

		if util.FlagIsSet(flags, flagHasCollator) {
			locale, err := util.ReadStringBinary(deserial)
			if err != nil {
				return nil, err
			}
			// an empty locale means no collation even though the bit was set
			if locale != "" {
				desc.Collator, err = NewCollator(locale)
				if err != nil {
					return nil, err
				}
			}
		}

		if util.FlagIsSet(flags, flagWithFill) {
			return nil, &UnsupportedFeatureError{Feature: "WITH FILL", Column: i}
		}
	}
	return d, nil
}
