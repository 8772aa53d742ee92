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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(name string, direction, nulls int8) SortColumnDescription {
	return SortColumnDescription{
		ColumnName:     name,
		Direction:      direction,
		NullsDirection: nulls,
	}
}

func Test_hasPrefix(t *testing.T) {
	abc := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Descending, NullsFirst),
		col("c", Ascending, NullsLast),
	)
	ab := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Descending, NullsFirst),
	)
	abFlipped := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Ascending, NullsFirst),
	)

	//the empty description is a prefix of everything
	assert.True(t, abc.HasPrefix(NewSortDescription()))
	assert.True(t, NewSortDescription().HasPrefix(NewSortDescription()))
	//every description is its own prefix
	assert.True(t, abc.HasPrefix(abc))
	assert.True(t, abc.HasPrefix(ab))
	//longer than this
	assert.False(t, ab.HasPrefix(abc))
	//structural mismatch
	assert.False(t, abc.HasPrefix(abFlipped))
}

func Test_hasPrefixCollatorIdentity(t *testing.T) {
	enUS, err := NewCollator("en_US")
	require.NoError(t, err)
	deDE, err := NewCollator("de_DE")
	require.NoError(t, err)

	withEn := NewSortDescription(SortColumnDescription{
		ColumnName: "s", Direction: Ascending, NullsDirection: NullsLast, Collator: enUS,
	})
	withDe := NewSortDescription(SortColumnDescription{
		ColumnName: "s", Direction: Ascending, NullsDirection: NullsLast, Collator: deDE,
	})
	plain := NewSortDescription(col("s", Ascending, NullsLast))

	assert.True(t, withEn.HasPrefix(withEn))
	assert.False(t, withEn.HasPrefix(withDe))
	assert.False(t, withEn.HasPrefix(plain))
	assert.False(t, plain.HasPrefix(withEn))
}

func Test_commonPrefix(t *testing.T) {
	abc := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Descending, NullsFirst),
		col("c", Ascending, NullsLast),
	)
	abd := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Descending, NullsFirst),
		col("d", Ascending, NullsLast),
	)
	unrelated := NewSortDescription(col("x", Ascending, NullsLast))

	same := CommonPrefix(abc, abc)
	assert.True(t, same.Equal(abc))

	ab := CommonPrefix(abc, abd)
	require.Equal(t, 2, ab.Size())
	assert.True(t, ab.Columns[0].Equal(&abc.Columns[0]))
	assert.True(t, ab.Columns[1].Equal(&abc.Columns[1]))

	empty := CommonPrefix(abc, unrelated)
	assert.True(t, empty.Empty())

	short := CommonPrefix(abc, NewSortDescription(col("a", Ascending, NullsLast)))
	assert.Equal(t, 1, short.Size())
	assert.LessOrEqual(t, short.Size(), min(abc.Size(), 1))
}

func Test_commonPrefixKeepsLhsClauses(t *testing.T) {
	enUS, err := NewCollator("en_US")
	require.NoError(t, err)

	lhs := NewSortDescription(
		SortColumnDescription{ColumnName: "s", Direction: Ascending,
			NullsDirection: NullsLast, Collator: enUS},
		col("b", Ascending, NullsLast),
	)
	rhs := NewSortDescription(
		SortColumnDescription{ColumnName: "s", Direction: Ascending,
			NullsDirection: NullsLast, Collator: enUS},
		col("z", Descending, NullsLast),
	)

	prefix := CommonPrefix(lhs, rhs)
	require.Equal(t, 1, prefix.Size())
	//lhs's collator instance is carried over, not rhs's
	assert.Same(t, enUS, prefix.Columns[0].Collator)
	assert.Same(t, lhs.Columns[0].Collator, prefix.Columns[0].Collator)
}

func Test_dump(t *testing.T) {
	d := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Descending, NullsFirst),
	)
	d.Columns[1].WithFill = true
	assert.Equal(t, "a ASC, b DESC WITH FILL", d.Dump())

	explain := d.Explain()
	require.Len(t, explain, 2)
	assert.Equal(t, "a", explain[0]["Column"])
	assert.Equal(t, true, explain[0]["Ascending"])
	assert.Equal(t, true, explain[1]["With Fill"])

	tree := d.ExplainTree()
	assert.Contains(t, tree, "SortDescription")
	assert.Contains(t, tree, "direction: DESC")
	assert.Contains(t, tree, "with fill")
}
