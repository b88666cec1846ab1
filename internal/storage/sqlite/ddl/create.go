// CREATE TABLE rendering against the shared ddl.TableDef model.
//
// Identifiers are double-quoted, dotted names segment by segment. Primary
// keys render as a trailing table constraint rather than inline, and the
// statement carries IF NOT EXISTS for callers that skip the drop-first
// bootstrap.
package ddl

import (
	"fmt"
	"strings"

	gddl "booketl/internal/ddl"
)

// BuildCreateTableSQL renders one CREATE TABLE statement for def.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	switch {
	case name == "":
		return "", fmt.Errorf("sqlite ddl: table name must not be empty")
	case len(t.Columns) == 0:
		return "", fmt.Errorf("sqlite ddl: table %s has no columns", name)
	}

	var cols, pks []string
	for _, c := range t.Columns {
		line, err := columnDDL(c)
		if err != nil {
			return "", fmt.Errorf("sqlite ddl: table %s: %w", name, err)
		}
		cols = append(cols, line)
		if c.PrimaryKey {
			pks = append(pks, quoteIdent(strings.TrimSpace(c.Name)))
		}
	}
	if len(pks) > 0 {
		cols = append(cols, "PRIMARY KEY ("+strings.Join(pks, ", ")+")")
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		quoteFQN(name), strings.Join(cols, ",\n  ")), nil
}

func columnDDL(c gddl.ColumnDef) (string, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "", fmt.Errorf("column with empty name")
	}
	typ := strings.TrimSpace(c.SQLType)
	if typ == "" {
		return "", fmt.Errorf("column %s missing SQLType", name)
	}
	line := quoteIdent(name) + " " + typ
	if !c.Nullable {
		line += " NOT NULL"
	}
	return line, nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// quoteFQN quotes a possibly dotted name, dropping empty segments.
func quoteFQN(fqn string) string {
	var out []string
	for _, p := range strings.Split(fqn, ".") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, quoteIdent(p))
		}
	}
	return strings.Join(out, ".")
}
