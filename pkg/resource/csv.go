package resource

import (
	"bytes"
	"encoding/csv"
)

// CSVTable is a parsed CSV document. Records keep their file order and
// may have varying field counts.
type CSVTable struct {
	Records [][]string
}

// Len reports the number of records.
func (t *CSVTable) Len() int {
	return len(t.Records)
}

// Row returns one record by index.
func (t *CSVTable) Row(i int) []string {
	return t.Records[i]
}

func parseCSV(data []byte) (*CSVTable, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return &CSVTable{Records: records}, nil
}
