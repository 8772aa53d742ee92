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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plamb/sortdesc/pkg/common"
)

func Test_hugeintString(t *testing.T) {
	//the low word is unsigned, a set high bit must not flip the sign
	assert.Equal(t, "18446744073709551615", HugeintValue(0, -1).String())
	assert.Equal(t, "36893488147419103231", HugeintValue(1, -1).String())
	assert.Equal(t, "18446744073709551616", HugeintValue(1, 0).String())
	assert.Equal(t, "42", HugeintValue(0, 42).String())
	assert.Equal(t, "-18446744073709551616", HugeintValue(-1, 0).String())
}

func Test_valueString(t *testing.T) {
	assert.Equal(t, "NULL", NullValue(common.IntegerType()).String())
	assert.Equal(t, "-7", IntegerValue(-7).String())
	assert.Equal(t, "2026-08-30", DateValue(2026, 8, 30).String())
	assert.Equal(t, "alpha", VarcharValue("alpha").String())
}
