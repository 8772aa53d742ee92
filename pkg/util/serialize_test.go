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

package util

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_varUint(t *testing.T) {
	values := []uint64{
		0, 1, 127, 128, 300, 16383, 16384,
		1<<32 - 1, 1 << 32, 1<<64 - 1,
	}
	for _, want := range values {
		serial := NewBufferSerialize()
		err := WriteVarUint(want, serial)
		require.NoError(t, err)

		deserial := NewBufferDeserialize(serial.Bytes())
		var got uint64
		err = ReadVarUint(&got, deserial)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func Test_varUintSmallValuesAreOneByte(t *testing.T) {
	serial := NewBufferSerialize()
	err := WriteVarUint(5, serial)
	require.NoError(t, err)
	assert.Equal(t, []byte{5}, serial.Bytes())
}

func Test_stringBinary(t *testing.T) {
	for _, want := range []string{"", "a", "hello", "日本語"} {
		serial := NewBufferSerialize()
		err := WriteStringBinary(want, serial)
		require.NoError(t, err)

		deserial := NewBufferDeserialize(serial.Bytes())
		got, err := ReadStringBinary(deserial)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func Test_fixedWidth(t *testing.T) {
	serial := NewBufferSerialize()
	require.NoError(t, Write[uint8](0x7f, serial))
	require.NoError(t, Write[int64](-42, serial))

	deserial := NewBufferDeserialize(serial.Bytes())
	var b uint8
	var i int64
	require.NoError(t, Read[uint8](&b, deserial))
	require.NoError(t, Read[int64](&i, deserial))
	assert.Equal(t, uint8(0x7f), b)
	assert.Equal(t, int64(-42), i)
}

func Test_bufferDeserializeShortRead(t *testing.T) {
	deserial := NewBufferDeserialize([]byte{1, 2})
	buf := make([]byte, 4)
	err := deserial.ReadData(buf, 4)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func Test_stringBinaryHostileLength(t *testing.T) {
	//length prefixes larger than the stream error instead of sizing
	//an allocation off wire data
	prefixes := []uint64{1 << 62, MaxStringBinarySize + 1, 1 << 20}
	for _, l := range prefixes {
		serial := NewBufferSerialize()
		require.NoError(t, WriteVarUint(l, serial))

		deserial := NewBufferDeserialize(serial.Bytes())
		_, err := ReadStringBinary(deserial)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, l)
	}
}

func Test_stringBinaryLongerThanOneStep(t *testing.T) {
	want := strings.Repeat("x", 4096*2+17)
	serial := NewBufferSerialize()
	require.NoError(t, WriteStringBinary(want, serial))

	deserial := NewBufferDeserialize(serial.Bytes())
	got, err := ReadStringBinary(deserial)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
