package sql

import (
	"testing"
)

func TestParseTransactionControl(t *testing.T) {
	tests := []struct {
		sql  string
		want NodeType
	}{
		{"BEGIN", NodeBegin},
		{"begin", NodeBegin},
		{"COMMIT", NodeCommit},
		{"ROLLBACK", NodeRollback},
		{"START TRANSACTION", NodeBegin},
		{"  start   transaction ", NodeBegin},
		{"commit;", NodeCommit},
		{"Rollback ;", NodeRollback},
	}

	for _, tt := range tests {
		plan, err := ParseToPlan(tt.sql)
		if err != nil {
			t.Fatalf("Parse %q failed: %v", tt.sql, err)
		}
		if plan.Type() != tt.want {
			t.Errorf("Parse %q: want %v, got %s", tt.sql, tt.want, plan)
		}
	}
}

func TestParseSelect(t *testing.T) {
	plan, err := ParseToPlan("SELECT v FROM kv WHERE k = 'foo'")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	get, ok := plan.(*PointGetNode)
	if !ok {
		t.Fatalf("Expected PointGetNode, got %T", plan)
	}
	if get.Key != "foo" {
		t.Errorf("Expected key 'foo', got '%s'", get.Key)
	}

	plan, err = ParseToPlan("SELECT * FROM kv")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := plan.(*ScanNode); !ok {
		t.Fatalf("Expected ScanNode, got %T", plan)
	}
}

func TestParseInsert(t *testing.T) {
	tests := []struct {
		sql  string
		want []KeyValue
	}{
		{"INSERT INTO kv (k, v) VALUES ('foo', 10)", []KeyValue{{"foo", 10}}},
		{"INSERT INTO kv (v, k) VALUES (10, 'foo')", []KeyValue{{"foo", 10}}},
		{"INSERT INTO kv VALUES ('a', 1), ('b', '2')", []KeyValue{{"a", 1}, {"b", 2}}},
		{"REPLACE INTO kv (k, v) VALUES ('foo', 4294967295)", []KeyValue{{"foo", 4294967295}}},
	}

	for _, tt := range tests {
		plan, err := ParseToPlan(tt.sql)
		if err != nil {
			t.Fatalf("Parse %q failed: %v", tt.sql, err)
		}
		set, ok := plan.(*SetNode)
		if !ok {
			t.Fatalf("Parse %q: expected SetNode, got %T", tt.sql, plan)
		}
		if len(set.Pairs) != len(tt.want) {
			t.Fatalf("Parse %q: want %v, got %v", tt.sql, tt.want, set.Pairs)
		}
		for i := range tt.want {
			if set.Pairs[i] != tt.want[i] {
				t.Errorf("Parse %q pair %d: want %v, got %v", tt.sql, i, tt.want[i], set.Pairs[i])
			}
		}
	}
}

func TestParseDelete(t *testing.T) {
	plan, err := ParseToPlan("DELETE FROM kv WHERE k = 'foo'")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	unset, ok := plan.(*UnsetNode)
	if !ok {
		t.Fatalf("Expected UnsetNode, got %T", plan)
	}
	if unset.Key != "foo" {
		t.Errorf("Expected key 'foo', got '%s'", unset.Key)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"INSERT INTO kv (k, v) VALUES ('foo', 4294967296)", // overflows uint32
		"INSERT INTO kv (k, v) VALUES ('foo', 'ten')",
		"INSERT INTO kv (k, v) VALUES ('foo', 1.5)",
		"INSERT INTO users (k, v) VALUES ('foo', 1)",
		"INSERT INTO kv (k, x) VALUES ('foo', 1)",
		"SELECT v FROM kv WHERE k > 'foo'",
		"SELECT v FROM kv WHERE v = 1",
		"SELECT name FROM kv",
		"DELETE FROM kv",
		"DELETE FROM users WHERE k = 'foo'",
		"INSERT INTO kv (k, v) VALUES ('a', 1) ON DUPLICATE KEY UPDATE v = 2",
		"SELECT v FROM kv WHERE k = 'foo' LIMIT 0",
		"SELECT v FROM kv WHERE k = 'foo' ORDER BY v",
		"SELECT v FROM kv GROUP BY v",
		"SELECT v FROM kv GROUP BY v HAVING v > 1",
		"BEGIN WORK NOW",
		"UPDATE kv SET v = 1 WHERE k = 'foo'",
		"not sql at all",
	}

	for _, sql := range bad {
		if plan, err := ParseToPlan(sql); err == nil {
			t.Errorf("Parse %q: expected error, got %s", sql, plan)
		}
	}
}
