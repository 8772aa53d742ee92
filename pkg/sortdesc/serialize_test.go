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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plamb/sortdesc/pkg/util"
)

func roundTrip(t *testing.T, d *SortDescription) *SortDescription {
	serial := util.NewBufferSerialize()
	err := d.Serialize(serial)
	require.NoError(t, err)
	got, err := DeserializeSortDescription(util.NewBufferDeserialize(serial.Bytes()))
	require.NoError(t, err)
	return got
}

func Test_roundTripPlain(t *testing.T) {
	d := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Descending, NullsFirst),
		col("value_3", Descending, NullsLast),
	)
	got := roundTrip(t, d)
	require.Equal(t, d.Size(), got.Size())
	for i := range d.Columns {
		assert.Equal(t, d.Columns[i].ColumnName, got.Columns[i].ColumnName)
		assert.Equal(t, d.Columns[i].Direction, got.Columns[i].Direction)
		assert.Equal(t, d.Columns[i].NullsDirection, got.Columns[i].NullsDirection)
		assert.Nil(t, got.Columns[i].Collator)
	}
	assert.True(t, got.Equal(d))
}

func Test_roundTripEmpty(t *testing.T) {
	got := roundTrip(t, NewSortDescription())
	assert.True(t, got.Empty())
}

func Test_collatorWireLayout(t *testing.T) {
	enUS, err := NewCollator("en_US")
	require.NoError(t, err)
	d := NewSortDescription(SortColumnDescription{
		ColumnName:     "a",
		Direction:      Ascending,
		NullsDirection: NullsLast,
		Collator:       enUS,
	})

	serial := util.NewBufferSerialize()
	require.NoError(t, d.Serialize(serial))

	want := []byte{
		1,        //column count
		1, 'a',   //column name
		0b0111,   //ascending | nulls last | has collator
		5, 'e', 'n', '_', 'U', 'S',
	}
	assert.Equal(t, want, serial.Bytes())

	got, err := DeserializeSortDescription(util.NewBufferDeserialize(serial.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 1, got.Size())
	require.NotNil(t, got.Columns[0].Collator)
	assert.Equal(t, "en_US", got.Columns[0].Collator.Locale())
	//the reconstructed collator behaves like the original
	assert.Equal(t,
		enUS.Compare("straße", "strasse"),
		got.Columns[0].Collator.Compare("straße", "strasse"))
}

func Test_emptyLocaleYieldsNoCollator(t *testing.T) {
	raw := []byte{
		1,
		1, 'a',
		0b0111, //collator bit set
		0,      //but the locale is empty
	}
	got, err := DeserializeSortDescription(util.NewBufferDeserialize(raw))
	require.NoError(t, err)
	require.Equal(t, 1, got.Size())
	assert.Nil(t, got.Columns[0].Collator)
}

func Test_serializeWithFillFails(t *testing.T) {
	d := NewSortDescription(
		col("a", Ascending, NullsLast),
		col("b", Ascending, NullsLast),
	)
	d.Columns[1].WithFill = true

	err := d.Serialize(util.NewBufferSerialize())
	require.Error(t, err)
	var unsupported *UnsupportedFeatureError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "WITH FILL", unsupported.Feature)
	assert.Equal(t, 1, unsupported.Column)
}

func Test_deserializeWithFillBitFails(t *testing.T) {
	raw := []byte{
		1,
		1, 'a',
		0b1001, //ascending | with fill
	}
	_, err := DeserializeSortDescription(util.NewBufferDeserialize(raw))
	require.Error(t, err)
	var unsupported *UnsupportedFeatureError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, 0, unsupported.Column)
}

func Test_deserializeTruncatedStream(t *testing.T) {
	serial := util.NewBufferSerialize()
	d := NewSortDescription(col("abcdef", Ascending, NullsLast))
	require.NoError(t, d.Serialize(serial))
	raw := serial.Bytes()

	_, err := DeserializeSortDescription(util.NewBufferDeserialize(raw[:len(raw)-2]))
	assert.Error(t, err)
}

func Test_deserializeHostileLengths(t *testing.T) {
	//a handful of bytes claiming huge sizes must error, not exhaust memory
	hostile := [][]byte{
		//column count 2^62
		{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x40},
		//one column whose name claims 2^62 bytes
		{1, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x40},
		//one column, empty name, collator bit set, locale claims 2^62 bytes
		{1, 0, 0b0101, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x40},
	}
	for _, raw := range hostile {
		d, err := DeserializeSortDescription(util.NewBufferDeserialize(raw))
		require.Error(t, err)
		assert.Nil(t, d)
	}
}
