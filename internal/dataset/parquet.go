package dataset

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// parquetRow mirrors the postings Parquet schema. Column names are the
// snake_cased CSV headers.
type parquetRow struct {
	Title          string `parquet:"job_title,optional"`
	Skills         string `parquet:"key_skills,optional"`
	Experience     string `parquet:"job_experience_required,optional"`
	RoleCategory   string `parquet:"role_category,optional"`
	FunctionalArea string `parquet:"functional_area,optional"`
	Industry       string `parquet:"industry,optional"`
	Salary         string `parquet:"job_salary,optional"`
}

func readParquet(path string) ([]rawRow, error) {
	records, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}

	rows := make([]rawRow, len(records))
	for i, rec := range records {
		rows[i] = rawRow{
			Title:          rec.Title,
			Skills:         rec.Skills,
			Experience:     rec.Experience,
			RoleCategory:   rec.RoleCategory,
			FunctionalArea: rec.FunctionalArea,
			Industry:       rec.Industry,
			Salary:         rec.Salary,
		}
	}

	return rows, nil
}
