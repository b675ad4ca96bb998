// Package dataset loads job postings from CSV and Parquet sources into
// domain postings. Sources that fail to load are skipped; loading fails
// only when no source yields data.
package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/domain"
)

// Source describes one postings file.
type Source struct {
	Path   string
	Format string // "csv", "parquet", or "" to detect by extension
}

// Loader reads postings from configured sources.
type Loader struct {
	sources []Source
	logger  *zap.Logger
}

// NewLoader creates a Loader over the given sources.
func NewLoader(sources []Source, logger *zap.Logger) *Loader {
	return &Loader{sources: sources, logger: logger}
}

// Load reads every source in order and concatenates the results. Posting IDs
// are assigned from the running row index across all sources ("job_<n>").
// Returns domain.ErrDataUnavailable when no source could be loaded.
func (l *Loader) Load(ctx context.Context) ([]domain.Posting, error) {
	var postings []domain.Posting
	loaded := 0

	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load postings: %w", err)
		}

		rows, err := l.readSource(src)
		if err != nil {
			l.logger.Warn("Skipping unloadable source",
				zap.String("path", src.Path),
				zap.Error(err))
			continue
		}

		for _, row := range rows {
			postings = append(postings, coerceRow(row, len(postings), src.Path))
		}
		loaded++

		l.logger.Info("Loaded postings source",
			zap.String("path", src.Path),
			zap.Int("records", len(rows)))
	}

	if loaded == 0 {
		return nil, fmt.Errorf("no source loaded out of %d: %w", len(l.sources), domain.ErrDataUnavailable)
	}

	return postings, nil
}

func (l *Loader) readSource(src Source) ([]rawRow, error) {
	format := src.Format
	if format == "" {
		switch strings.ToLower(filepath.Ext(src.Path)) {
		case ".parquet":
			format = "parquet"
		default:
			format = "csv"
		}
	}

	switch format {
	case "csv":
		return readCSV(src.Path)
	case "parquet":
		return readParquet(src.Path)
	default:
		return nil, fmt.Errorf("unsupported source format %q", format)
	}
}

// rawRow holds one posting's columns before coercion. Missing columns stay
// empty and coerce to "N/A".
type rawRow struct {
	Title          string
	Skills         string
	Experience     string
	RoleCategory   string
	FunctionalArea string
	Industry       string
	Salary         string
}

const missingValue = "N/A"

func coerceRow(row rawRow, idx int, source string) domain.Posting {
	return domain.Posting{
		ID:              fmt.Sprintf("job_%d", idx),
		Title:           orMissing(row.Title),
		Skills:          SplitSkills(row.Skills),
		SkillsRaw:       orMissing(row.Skills),
		Experience:      orMissing(row.Experience),
		RoleCategory:    orMissing(row.RoleCategory),
		FunctionalArea:  orMissing(row.FunctionalArea),
		Industry:        orMissing(row.Industry),
		SalaryRaw:       orMissing(row.Salary),
		SalaryNumeric:   ParseSalary(row.Salary),
		ExperienceYears: ParseExperience(row.Experience),
		Source:          source,
	}
}

func orMissing(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return missingValue
	}
	return s
}
