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
	"encoding/json"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the description the way it would appear in an ORDER BY
// clause.
func (d *SortDescription) Dump() string {
	var sb strings.Builder
	for i := range d.Columns {
		if i != 0 {
			sb.WriteString(", ")
		}
		desc := &d.Columns[i]
		sb.WriteString(desc.ColumnName)
		if desc.Direction > 0 {
			sb.WriteString(" ASC")
		} else {
			sb.WriteString(" DESC")
		}
		if desc.WithFill {
			sb.WriteString(" WITH FILL")
		}
	}
	return sb.String()
}

// Explain returns one map per column for plan output.
func (d *SortDescription) Explain() []map[string]any {
	ret := make([]map[string]any, 0, len(d.Columns))
	for i := range d.Columns {
		desc := &d.Columns[i]
		m := map[string]any{
			"Column":    desc.ColumnName,
			"Ascending": desc.Direction > 0,
			"With Fill": desc.WithFill,
		}
		if desc.Collator != nil {
			m["Collation"] = desc.Collator.Locale()
		}
		ret = append(ret, m)
	}
	return ret
}

func (d *SortDescription) ExplainJson() (string, error) {
	data, err := json.Marshal(d.Explain())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExplainTree renders the description as a tree for console output.
func (d *SortDescription) ExplainTree() string {
	tree := treeprint.New()
	tree.SetValue("SortDescription")
	for i := range d.Columns {
		desc := &d.Columns[i]
		branch := tree.AddBranch(desc.ColumnName)
		if desc.Direction > 0 {
			branch.AddNode("direction: ASC")
		} else {
			branch.AddNode("direction: DESC")
		}
		if desc.NullsDirection > 0 {
			branch.AddNode("nulls: LAST")
		} else {
			branch.AddNode("nulls: FIRST")
		}
		if desc.Collator != nil {
			branch.AddNode("collation: " + desc.Collator.Locale())
		}
		if desc.WithFill {
			branch.AddNode("with fill")
		}
	}
	return tree.String()
}
