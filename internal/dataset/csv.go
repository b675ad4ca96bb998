package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Column headers expected in postings CSV files.
const (
	colTitle          = "Job Title"
	colSkills         = "Key Skills"
	colExperience     = "Job Experience Required"
	colRoleCategory   = "Role Category"
	colFunctionalArea = "Functional Area"
	colIndustry       = "Industry"
	colSalary         = "Job Salary"
)

// readCSV parses a postings CSV. UTF-8 is tried first; files that are not
// valid UTF-8 are re-read as Latin-1.
func readCSV(path string) ([]rawRow, error) {
	rows, err := readCSVEncoded(path, false)
	if err == nil {
		return rows, nil
	}
	if !errors.Is(err, errNotUTF8) {
		return nil, err
	}
	return readCSVEncoded(path, true)
}

var errNotUTF8 = errors.New("file is not valid UTF-8")

func readCSVEncoded(path string, latin1 bool) ([]rawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if latin1 {
		src = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // ragged rows pad to missing

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	if !latin1 && !recordValidUTF8(header) {
		return nil, errNotUTF8
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var rows []rawRow
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if !latin1 && !recordValidUTF8(record) {
			return nil, errNotUTF8
		}

		rows = append(rows, rawRow{
			Title:          field(record, cols, colTitle),
			Skills:         field(record, cols, colSkills),
			Experience:     field(record, cols, colExperience),
			RoleCategory:   field(record, cols, colRoleCategory),
			FunctionalArea: field(record, cols, colFunctionalArea),
			Industry:       field(record, cols, colIndustry),
			Salary:         field(record, cols, colSalary),
		})
	}

	return rows, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func recordValidUTF8(record []string) bool {
	for _, v := range record {
		if !utf8.ValidString(v) {
			return false
		}
	}
	return true
}
