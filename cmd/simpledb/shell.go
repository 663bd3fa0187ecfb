package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/myuser/simpledb/internal/sql"
	"github.com/myuser/simpledb/internal/storage"
)

// shell executes statements typed by the user against one store.
type shell struct {
	db     *storage.MemoryDB
	logger *zap.Logger
	out    io.Writer
}

// exec runs one input line. Store and parse errors are printed, not returned.
func (s *shell) exec(line string) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimSuffix(line, ";"))
	if line == "" {
		return
	}

	plan, err := sql.ParseToPlan(line)
	if err != nil {
		s.logger.Debug("parse failed", zap.String("statement", line), zap.Error(err))
		fmt.Fprintf(s.out, "ERROR: %v\n", err)
		return
	}

	rows, err := sql.Execute(plan, s.db)
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %v\n", err)
		return
	}

	switch plan.(type) {
	case *sql.PointGetNode:
		if len(rows) == 0 {
			fmt.Fprintln(s.out, "NULL")
			return
		}
	case *sql.ScanNode:
	default:
		fmt.Fprintln(s.out, "OK")
		return
	}
	for _, row := range rows {
		fmt.Fprintln(s.out, strings.Join(row, " = "))
	}
}

func (s *shell) prompt() string {
	if d := s.db.Depth(); d > 0 {
		return fmt.Sprintf("simpledb(txn %d)> ", d)
	}
	return "simpledb> "
}
