package sql

import (
	"strconv"
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
	"github.com/pkg/errors"
)

// The store is exposed as a single two-column table.
const (
	TableName   = "kv"
	KeyColumn   = "k"
	ValueColumn = "v"
)

// Transaction control is not part of the parser's grammar.
var controlStatements = map[string]func() PlanNode{
	"BEGIN":             func() PlanNode { return &BeginNode{} },
	"START TRANSACTION": func() PlanNode { return &BeginNode{} },
	"COMMIT":            func() PlanNode { return &CommitNode{} },
	"ROLLBACK":          func() PlanNode { return &RollbackNode{} },
}

// ParseToPlan parses a SQL string and returns a logical plan.
func ParseToPlan(sql string) (PlanNode, error) {
	if build, ok := controlStatements[normalizeControl(sql)]; ok {
		return build(), nil
	}

	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", sql)
	}

	switch s := stmt.(type) {
	case *sqlparser.Select:
		return buildSelectPlan(s)
	case *sqlparser.Insert:
		return buildInsertPlan(s)
	case *sqlparser.Delete:
		return buildDeletePlan(s)
	default:
		return nil, errors.Errorf("unsupported statement type: %T", stmt)
	}
}

// normalizeControl upper-cases sql and collapses whitespace, dropping a
// trailing semicolon.
func normalizeControl(sql string) string {
	sql = strings.TrimSuffix(strings.TrimSpace(sql), ";")
	return strings.ToUpper(strings.Join(strings.Fields(sql), " "))
}

func buildSelectPlan(stmt *sqlparser.Select) (PlanNode, error) {
	if len(stmt.OrderBy) > 0 || len(stmt.GroupBy) > 0 || stmt.Having != nil || stmt.Limit != nil {
		return nil, errors.New("SELECT supports no ORDER BY, GROUP BY, HAVING or LIMIT")
	}
	if len(stmt.From) != 1 {
		return nil, errors.New("SELECT must read from exactly one table")
	}
	aliasedTable, ok := stmt.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, errors.New("complex FROM clauses not supported")
	}
	if err := checkTable(sqlparser.String(aliasedTable.Expr)); err != nil {
		return nil, err
	}

	for _, expr := range stmt.SelectExprs {
		switch e := expr.(type) {
		case *sqlparser.StarExpr:
		case *sqlparser.AliasedExpr:
			col, ok := e.Expr.(*sqlparser.ColName)
			if !ok {
				return nil, errors.Errorf("unsupported select expression %s", sqlparser.String(e))
			}
			if err := checkColumn(col, KeyColumn, ValueColumn); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Errorf("unsupported select expression %s", sqlparser.String(expr))
		}
	}

	if stmt.Where == nil {
		return &ScanNode{}, nil
	}
	key, err := pointKey(stmt.Where)
	if err != nil {
		return nil, err
	}
	return &PointGetNode{Key: key}, nil
}

func buildInsertPlan(stmt *sqlparser.Insert) (PlanNode, error) {
	if err := checkTable(sqlparser.String(stmt.Table)); err != nil {
		return nil, err
	}

	// Column order defaults to (k, v).
	keyIdx, valIdx := 0, 1
	if len(stmt.Columns) > 0 {
		if len(stmt.Columns) != 2 {
			return nil, errors.Errorf("INSERT needs columns (%s, %s)", KeyColumn, ValueColumn)
		}
		keyIdx, valIdx = -1, -1
		for i, col := range stmt.Columns {
			switch strings.ToLower(col.String()) {
			case KeyColumn:
				keyIdx = i
			case ValueColumn:
				valIdx = i
			}
		}
		if keyIdx < 0 || valIdx < 0 {
			return nil, errors.Errorf("INSERT needs columns (%s, %s)", KeyColumn, ValueColumn)
		}
	}

	if len(stmt.OnDup) > 0 {
		return nil, errors.New("ON DUPLICATE KEY UPDATE not supported")
	}

	rows, ok := stmt.Rows.(sqlparser.Values)
	if !ok {
		return nil, errors.New("INSERT from SELECT not supported")
	}

	node := &SetNode{Pairs: make([]KeyValue, 0, len(rows))}
	for _, row := range rows {
		if len(row) != 2 {
			return nil, errors.Errorf("INSERT row has %d values, want 2", len(row))
		}
		key, err := literal(row[keyIdx])
		if err != nil {
			return nil, err
		}
		value, err := parseValue(row[valIdx])
		if err != nil {
			return nil, errors.Wrapf(err, "key %s", key)
		}
		node.Pairs = append(node.Pairs, KeyValue{Key: key, Value: value})
	}
	return node, nil
}

func buildDeletePlan(stmt *sqlparser.Delete) (PlanNode, error) {
	if len(stmt.Targets) > 0 {
		return nil, errors.New("multi-table DELETE not supported")
	}
	if len(stmt.TableExprs) != 1 {
		return nil, errors.New("DELETE must target exactly one table")
	}
	aliasedTable, ok := stmt.TableExprs[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, errors.New("complex FROM clauses not supported")
	}
	if err := checkTable(sqlparser.String(aliasedTable.Expr)); err != nil {
		return nil, err
	}
	if stmt.Where == nil {
		return nil, errors.Errorf("DELETE needs WHERE %s = <key>", KeyColumn)
	}
	key, err := pointKey(stmt.Where)
	if err != nil {
		return nil, err
	}
	return &UnsetNode{Key: key}, nil
}

// pointKey extracts the key from a "k = <literal>" condition.
func pointKey(where *sqlparser.Where) (string, error) {
	cmp, ok := where.Expr.(*sqlparser.ComparisonExpr)
	if !ok || cmp.Operator != sqlparser.EqualStr {
		return "", errors.Errorf("only %s = <key> conditions are supported, got %s",
			KeyColumn, sqlparser.String(where.Expr))
	}
	col, ok := cmp.Left.(*sqlparser.ColName)
	if !ok {
		return "", errors.Errorf("left side of %s must be a column", sqlparser.String(cmp))
	}
	if err := checkColumn(col, KeyColumn); err != nil {
		return "", err
	}
	return literal(cmp.Right)
}

func literal(expr sqlparser.Expr) (string, error) {
	val, ok := expr.(*sqlparser.SQLVal)
	if !ok {
		return "", errors.Errorf("expected literal, got %s", sqlparser.String(expr))
	}
	return string(val.Val), nil
}

func parseValue(expr sqlparser.Expr) (uint32, error) {
	val, ok := expr.(*sqlparser.SQLVal)
	if !ok || (val.Type != sqlparser.IntVal && val.Type != sqlparser.StrVal) {
		return 0, errors.Errorf("value must be an unsigned integer, got %s", sqlparser.String(expr))
	}
	v, err := strconv.ParseUint(string(val.Val), 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "value must be an unsigned 32-bit integer")
	}
	return uint32(v), nil
}

func checkTable(name string) error {
	if !strings.EqualFold(name, TableName) {
		return errors.Errorf("unknown table %s", name)
	}
	return nil
}

func checkColumn(col *sqlparser.ColName, allowed ...string) error {
	name := strings.ToLower(col.Name.String())
	for _, a := range allowed {
		if name == a {
			return nil
		}
	}
	return errors.Errorf("unknown column %s", sqlparser.String(col))
}
