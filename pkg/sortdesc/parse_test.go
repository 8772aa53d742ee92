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

func Test_parseOrderBy(t *testing.T) {
	d, err := ParseOrderBy(`a ASC, b DESC NULLS FIRST, c COLLATE "en_US"`)
	require.NoError(t, err)
	require.Equal(t, 3, d.Size())

	assert.Equal(t, "a", d.Columns[0].ColumnName)
	assert.Equal(t, int8(Ascending), d.Columns[0].Direction)
	assert.Equal(t, int8(NullsLast), d.Columns[0].NullsDirection)
	assert.Nil(t, d.Columns[0].Collator)

	assert.Equal(t, "b", d.Columns[1].ColumnName)
	assert.Equal(t, int8(Descending), d.Columns[1].Direction)
	assert.Equal(t, int8(NullsFirst), d.Columns[1].NullsDirection)

	assert.Equal(t, "c", d.Columns[2].ColumnName)
	require.NotNil(t, d.Columns[2].Collator)
	assert.Equal(t, "en_US", d.Columns[2].Collator.Locale())
}

func Test_parseOrderByDefaultNulls(t *testing.T) {
	//postgres defaults: nulls are largest, so DESC puts them first
	d, err := ParseOrderBy("a, b DESC")
	require.NoError(t, err)
	require.Equal(t, 2, d.Size())

	assert.Equal(t, int8(Ascending), d.Columns[0].Direction)
	assert.Equal(t, int8(NullsLast), d.Columns[0].NullsDirection)

	assert.Equal(t, int8(Descending), d.Columns[1].Direction)
	assert.Equal(t, int8(NullsFirst), d.Columns[1].NullsDirection)
}

func Test_parseOrderByExplicitNullsLast(t *testing.T) {
	d, err := ParseOrderBy("a DESC NULLS LAST")
	require.NoError(t, err)
	require.Equal(t, 1, d.Size())
	assert.Equal(t, int8(Descending), d.Columns[0].Direction)
	assert.Equal(t, int8(NullsLast), d.Columns[0].NullsDirection)
}

func Test_parseOrderByRejectsExpressions(t *testing.T) {
	_, err := ParseOrderBy("a + 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column references")
}

func Test_parseOrderByRejectsGarbage(t *testing.T) {
	_, err := ParseOrderBy("ORDER BY ORDER BY")
	require.Error(t, err)
}

func Test_parseOrderByBadLocale(t *testing.T) {
	_, err := ParseOrderBy(`a COLLATE "no_such_locale_tag!!"`)
	require.Error(t, err)
}
