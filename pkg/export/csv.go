// Package export serializes aggregated records to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/steneberg/webharvest/pkg/parse"
)

// WriteFile writes records to a UTF-8, comma-delimited CSV file at path,
// overwriting any existing file. There are no append semantics.
//
// Columns fixes the header and the cell order for every row. A nil column
// list falls back to the field order of the first record. Records missing
// a column get an empty cell; fields outside the columns are dropped. An
// empty record list produces a header-only file, never an error.
func WriteFile(path string, columns []string, records []parse.Record) error {
	if columns == nil && len(records) > 0 {
		columns = records[0].Names()
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if len(columns) > 0 {
		if err := writer.Write(columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := make([]string, len(columns))
	for _, record := range records {
		for i, col := range columns {
			row[i], _ = record.Get(col)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Int("records", len(records)).
		Msg("CSV written")

	return nil
}
