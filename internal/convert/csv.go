package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvBatchSize is the number of data rows per section.
const csvBatchSize = 20

// CSV converts comma-separated files into a "# name" document with one
// "## Rows a-b" section per batch of rows. Row numbers are 1-indexed and
// count the header row.
type CSV struct{}

func (c *CSV) Convert(r io.Reader, name string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# " + name + "\n")
	if len(records) == 0 {
		return sb.String(), nil
	}

	headers := records[0]
	sb.WriteString("\nColumns: " + strings.Join(headers, ", ") + "\n")

	dataRows := records[1:]
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		fmt.Fprintf(&sb, "\n## Rows %d-%d\n\n", i+2, end+1)
		for _, row := range dataRows[i:end] {
			cells := make([]string, len(row))
			for j, cell := range row {
				if j < len(headers) {
					cells[j] = headers[j] + ": " + cell
				} else {
					cells[j] = cell
				}
			}
			sb.WriteString(escapeLine(strings.Join(cells, ", ")) + "\n")
		}
	}
	return sb.String(), nil
}
