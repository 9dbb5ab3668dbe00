package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/services"
)

// parseValue converts a flag value to the Go type of the column it is
// compared with. Unknown columns keep the raw string; the DAO rejects them.
func parseValue(table domain.TableMetadata, column, raw string) (any, error) {
	c, ok := table.Column(column)
	if !ok {
		return raw, nil
	}
	switch c.Type {
	case domain.TypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s expects an integer, got %q", domain.ErrInvalidQuery, column, raw)
		}
		return n, nil
	case domain.TypeReal:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s expects a number, got %q", domain.ErrInvalidQuery, column, raw)
		}
		return f, nil
	default:
		return raw, nil
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidQuery, a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// formatRecord renders a record as "col=value" pairs in column order.
func formatRecord(table domain.TableMetadata, r services.Record) string {
	parts := make([]string, 0, len(table.Columns()))
	for _, c := range table.Columns() {
		if c.PrimaryKey {
			parts = append(parts, fmt.Sprintf("%s=%d", c.Name, r.ID))
			continue
		}
		v := r.Get(c.Name)
		if v == nil {
			parts = append(parts, c.Name+"=NULL")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", c.Name, v))
	}
	return strings.Join(parts, "  ")
}

func printRecords(cmd *cobra.Command, table domain.TableMetadata, records []services.Record) {
	for _, r := range records {
		cmd.Printf("  %s\n", formatRecord(table, r))
	}
}
