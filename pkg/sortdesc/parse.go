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

	pg_query "github.com/pganalyze/pg_query_go/v5"
)

// ParseOrderBy builds a description from the text of an ORDER BY clause,
// e.g. `a ASC, b DESC NULLS FIRST, c COLLATE "en_US"`. Only plain column
// references are accepted as sort keys.
func ParseOrderBy(orderBy string) (*SortDescription, error) {
	result, err := pg_query.Parse("SELECT * FROM t ORDER BY " + orderBy)
	if err != nil {
		return nil, fmt.Errorf("parse order by: %w", err)
	}
	if len(result.Stmts) != 1 {
		return nil, fmt.Errorf("parse order by: expected one statement, got %d", len(result.Stmts))
	}
	sel := result.Stmts[0].Stmt.GetSelectStmt()
	if sel == nil {
		return nil, fmt.Errorf("parse order by: no select statement")
	}

	d := NewSortDescription()
	for i, node := range sel.SortClause {
		sortBy := node.GetSortBy()
		if sortBy == nil {
			return nil, fmt.Errorf("parse order by: item %d is not a sort clause", i)
		}
		desc, err := bindSortBy(sortBy)
		if err != nil {
			return nil, err
		}
		d.Columns = append(d.Columns, desc)
	}
	return d, nil
}

func bindSortBy(sortBy *pg_query.SortBy) (SortColumnDescription, error) {
	var ret SortColumnDescription

	keyNode := sortBy.Node
	if collateClause := keyNode.GetCollateClause(); collateClause != nil {
		locale := ""
		for _, name := range collateClause.Collname {
			locale = name.GetString_().GetSval()
		}
		collator, err := NewCollator(locale)
		if err != nil {
			return ret, err
		}
		ret.Collator = collator
		keyNode = collateClause.Arg
	}

	columnRef := keyNode.GetColumnRef()
	if columnRef == nil {
		return ret, fmt.Errorf("only column references are supported as sort keys")
	}
	for _, field := range columnRef.Fields {
		ret.ColumnName = field.GetString_().GetSval()
	}
	if ret.ColumnName == "" {
		return ret, fmt.Errorf("empty column reference in sort clause")
	}

	descending := false
	switch sortBy.SortbyDir {
	case pg_query.SortByDir_SORTBY_DEFAULT, pg_query.SortByDir_SORTBY_ASC:
		descending = false
	case pg_query.SortByDir_SORTBY_DESC:
		descending = true
	default:
		return ret, fmt.Errorf("unsupported sort direction %v", sortBy.SortbyDir)
	}
	if descending {
		ret.Direction = Descending
	} else {
		ret.Direction = Ascending
	}

	switch sortBy.SortbyNulls {
	case pg_query.SortByNulls_SORTBY_NULLS_FIRST:
		ret.NullsDirection = NullsFirst
	case pg_query.SortByNulls_SORTBY_NULLS_LAST:
		ret.NullsDirection = NullsLast
	case pg_query.SortByNulls_SORTBY_NULLS_DEFAULT:
		// postgres semantics: nulls sort as the largest values
		if descending {
			ret.NullsDirection = NullsFirst
		} else {
			ret.NullsDirection = NullsLast
		}
	default:
		return ret, fmt.Errorf("unsupported nulls ordering %v", sortBy.SortbyNulls)
	}
	return ret, nil
}
