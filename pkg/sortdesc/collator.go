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

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares strings under the rules of a locale.
type Collator struct {
	locale   string
	collator *collate.Collator
}

func NewCollator(locale string) (*Collator, error) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("bad collation locale %q: %w", locale, err)
	}
	return &Collator{
		locale:   locale,
		collator: collate.New(tag),
	}, nil
}

// Locale returns the name the collator was constructed from.
func (c *Collator) Locale() string {
	return c.locale
}

func (c *Collator) Compare(lhs, rhs string) int {
	return c.collator.CompareString(lhs, rhs)
}
