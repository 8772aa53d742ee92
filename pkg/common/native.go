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

// CanBeNativeType reports whether a value of the type fits into a single
// machine word usable by generated comparator code. Variable-length and
// wide types stay on the interpreted comparison path.
func CanBeNativeType(lt LType) bool {
	switch lt.GetInternalType() {
	case BOOL, INT8, INT16, INT32, INT64,
		UINT8, UINT16, UINT32, UINT64,
		FLOAT, DOUBLE, DATE:
		return true
	default:
		return false
	}
}

// IsComparatorCompilable reports whether a comparator kernel exists for the
// type at all. Broader than CanBeNativeType: kernels for VARCHAR, DECIMAL
// and HUGEINT exist but operate on non-native representations.
func IsComparatorCompilable(lt LType) bool {
	if CanBeNativeType(lt) {
		return true
	}
	switch lt.Id {
	case LTID_VARCHAR, LTID_DECIMAL, LTID_HUGEINT:
		return true
	default:
		return false
	}
}
