// Package encoder turns postings into the text and metadata stored in the
// vector index. The document template is the retrieval surface: every
// labeled line below participates in similarity.
package encoder

import (
	"fmt"
	"strings"

	"github.com/careerlens/careerlens/internal/domain"
)

// Metadata field names stored alongside each posting hash.
const (
	FieldTitle      = "job_title"
	FieldSkills     = "skills"
	FieldExperience = "experience"
	FieldRole       = "role_category"
	FieldIndustry   = "industry"
	FieldSalary     = "salary"
)

// DocumentText renders the embedded document for one posting: seven labeled
// lines combining the posting's searchable attributes.
func DocumentText(p *domain.Posting) string {
	var b strings.Builder
	writeLine(&b, "Job Title", p.Title)
	writeLine(&b, "Key Skills", p.SkillsRaw)
	writeLine(&b, "Experience Required", p.Experience)
	writeLine(&b, "Role Category", p.RoleCategory)
	writeLine(&b, "Functional Area", p.FunctionalArea)
	writeLine(&b, "Industry", p.Industry)
	writeLine(&b, "Salary", p.SalaryRaw)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

// Metadata projects the posting fields returned verbatim in match results.
func Metadata(p *domain.Posting) map[string]string {
	return map[string]string{
		FieldTitle:      p.Title,
		FieldSkills:     p.SkillsRaw,
		FieldExperience: p.Experience,
		FieldRole:       p.RoleCategory,
		FieldIndustry:   p.Industry,
		FieldSalary:     p.SalaryRaw,
	}
}

// MatchFromFields rebuilds a JobMatch from stored metadata plus the KNN
// similarity score.
func MatchFromFields(fields map[string]string, score float64, rank int) domain.JobMatch {
	return domain.JobMatch{
		JobTitle:       fields[FieldTitle],
		Skills:         fields[FieldSkills],
		Experience:     fields[FieldExperience],
		RoleCategory:   fields[FieldRole],
		Industry:       fields[FieldIndustry],
		Salary:         fields[FieldSalary],
		RelevanceScore: score,
		Rank:           rank,
	}
}
