package classifier

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadDataset loads labeled examples from a CSV file.
func ReadDataset(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	examples, err := ParseDataset(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return examples, nil
}

// ParseDataset reads "text,label" records after a header row. Rows with
// fewer than two fields or an empty label are skipped.
func ParseDataset(r io.Reader) ([]Example, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var examples []Example
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(record) < 2 {
			continue
		}

		label := strings.TrimSpace(record[1])
		if label == "" {
			continue
		}
		examples = append(examples, Example{
			Text:  strings.TrimSpace(record[0]),
			Label: label,
		})
	}

	return examples, nil
}
