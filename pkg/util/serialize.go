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
	"bytes"
	"io"
	"os"
	"unsafe"
)

func Write[T any](value T, serial Serialize) error {
	cnt := int(unsafe.Sizeof(value))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&value)), cnt)
	return serial.WriteData(buf, cnt)
}

func Read[T any](value *T, deserial Deserialize) error {
	cnt := int(unsafe.Sizeof(*value))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(value)), cnt)
	return deserial.ReadData(buf, cnt)
}

// WriteVarUint writes an unsigned value in 7-bit groups, least significant
// first, the high bit of each byte marking continuation.
func WriteVarUint(value uint64, serial Serialize) error {
	var buf [10]byte
	i := 0
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if value != 0 {
			b |= 0x80
		}
		buf[i] = b
		i++
		if value == 0 {
			break
		}
	}
	return serial.WriteData(buf[:i], i)
}

func ReadVarUint(value *uint64, deserial Deserialize) error {
	var b [1]byte
	*value = 0
	for shift := 0; shift < 64; shift += 7 {
		err := deserial.ReadData(b[:], 1)
		if err != nil {
			return err
		}
		*value |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return nil
		}
	}
	return io.ErrUnexpectedEOF
}

// MaxStringBinarySize bounds the length prefix a string read will accept.
// A longer prefix can only come from a corrupt or hostile stream.
const MaxStringBinarySize = 1 << 30

// WriteStringBinary writes a varint length prefix followed by the raw bytes.
func WriteStringBinary(s string, serial Serialize) error {
	err := WriteVarUint(uint64(len(s)), serial)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		return serial.WriteData(UnsafeStringToBytes(s), len(s))
	}
	return nil
}

// ReadStringBinary reads a varint-prefixed string. The payload is consumed
// in fixed-size steps so a corrupt length prefix fails with an error once
// the stream runs short instead of sizing an allocation off wire data.
func ReadStringBinary(deserial Deserialize) (string, error) {
	var l uint64
	err := ReadVarUint(&l, deserial)
	if err != nil {
		return "", err
	}
	if l > MaxStringBinarySize {
		return "", io.ErrUnexpectedEOF
	}

	const step = 4096
	var tmp [step]byte
	buf := make([]byte, 0, min(l, step))
	for read := uint64(0); read < l; {
		cnt := int(min(l-read, step))
		err = deserial.ReadData(tmp[:cnt], cnt)
		if err != nil {
			return "", err
		}
		buf = append(buf, tmp[:cnt]...)
		read += uint64(cnt)
	}
	return string(buf), nil
}

var _ Serialize = new(BufferSerialize)

// BufferSerialize collects serialized output in memory.
type BufferSerialize struct {
	data bytes.Buffer
}

func NewBufferSerialize() *BufferSerialize {
	return &BufferSerialize{}
}

func (serial *BufferSerialize) WriteData(buffer []byte, len int) error {
	_, err := serial.data.Write(buffer[:len])
	return err
}

func (serial *BufferSerialize) Bytes() []byte {
	return serial.data.Bytes()
}

func (serial *BufferSerialize) Close() error {
	return nil
}

var _ Deserialize = new(BufferDeserialize)

type BufferDeserialize struct {
	data []byte
	off  int
}

func NewBufferDeserialize(data []byte) *BufferDeserialize {
	return &BufferDeserialize{data: data}
}

func (deserial *BufferDeserialize) ReadData(buffer []byte, size int) error {
	if deserial.off+size > len(deserial.data) {
		return io.ErrUnexpectedEOF
	}
	copy(buffer[:size], deserial.data[deserial.off:])
	deserial.off += size
	return nil
}

func (deserial *BufferDeserialize) Close() error {
	return nil
}

var _ Serialize = new(FileSerialize)

type FileSerialize struct {
	file *os.File
}

func NewFileSerialize(name string) (*FileSerialize, error) {
	var err error
	ret := &FileSerialize{}
	ret.file, err = os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_SYNC, 0775)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (serial *FileSerialize) WriteData(buffer []byte, len int) error {
	var wlen int
	var n int
	var err error
	for wlen < len {
		n, err = serial.file.Write(buffer[wlen:len])
		if err != nil {
			return err
		}
		wlen += n
	}
	return nil
}

func (serial *FileSerialize) Close() error {
	_ = serial.file.Sync()
	_ = serial.file.Close()
	return nil
}

var _ Deserialize = new(FileDeserialize)

type FileDeserialize struct {
	file *os.File
}

func NewFileDeserialize(name string) (*FileDeserialize, error) {
	var err error
	ret := &FileDeserialize{}
	ret.file, err = os.OpenFile(name, os.O_RDONLY, 0775)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (deserial *FileDeserialize) ReadData(buffer []byte, len int) error {
	var rlen int
	var n int
	var err error
	for rlen < len {
		n, err = deserial.file.Read(buffer[rlen:len])
		if err != nil {
			return err
		}
		rlen += n
	}
	return nil
}

func (deserial *FileDeserialize) Close() error {
	_ = deserial.file.Close()
	return nil
}
