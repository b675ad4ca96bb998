package encoder

import (
	"strings"
	"testing"

	"github.com/careerlens/careerlens/internal/domain"
)

func samplePosting() *domain.Posting {
	return &domain.Posting{
		ID:             "job_0",
		Title:          "Software Engineer",
		SkillsRaw:      "Go| Redis| Docker",
		Skills:         []string{"go", "redis", "docker"},
		Experience:     "2 - 5 yrs",
		RoleCategory:   "Programming",
		FunctionalArea: "IT Software",
		Industry:       "IT-Software",
		SalaryRaw:      "4,00,000 - 6,00,000 PA",
	}
}

func TestDocumentText(t *testing.T) {
	doc := DocumentText(samplePosting())

	lines := strings.Split(doc, "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), doc)
	}

	wantPrefixes := []string{
		"Job Title: Software Engineer",
		"Key Skills: Go| Redis| Docker",
		"Experience Required: 2 - 5 yrs",
		"Role Category: Programming",
		"Functional Area: IT Software",
		"Industry: IT-Software",
		"Salary: 4,00,000 - 6,00,000 PA",
	}
	for i, want := range wantPrefixes {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestDocumentText_MissingFields(t *testing.T) {
	p := &domain.Posting{
		Title:          "Engineer",
		SkillsRaw:      "N/A",
		Experience:     "N/A",
		RoleCategory:   "N/A",
		FunctionalArea: "N/A",
		Industry:       "N/A",
		SalaryRaw:      "N/A",
	}

	doc := DocumentText(p)
	if !strings.Contains(doc, "Key Skills: N/A") {
		t.Errorf("expected N/A placeholder in document:\n%s", doc)
	}
}

func TestMetadata(t *testing.T) {
	m := Metadata(samplePosting())

	if len(m) != 6 {
		t.Fatalf("expected 6 metadata fields, got %d", len(m))
	}
	if m[FieldTitle] != "Software Engineer" {
		t.Errorf("unexpected title: %s", m[FieldTitle])
	}
	if m[FieldSkills] != "Go| Redis| Docker" {
		t.Errorf("unexpected skills: %s", m[FieldSkills])
	}
	if m[FieldSalary] != "4,00,000 - 6,00,000 PA" {
		t.Errorf("unexpected salary: %s", m[FieldSalary])
	}
	if _, ok := m["functional_area"]; ok {
		t.Error("functional area is a document-only field, not metadata")
	}
}

func TestMatchFromFields(t *testing.T) {
	fields := Metadata(samplePosting())

	match := MatchFromFields(fields, 0.87, 1)
	if match.JobTitle != "Software Engineer" {
		t.Errorf("unexpected title: %s", match.JobTitle)
	}
	if match.RelevanceScore != 0.87 {
		t.Errorf("unexpected score: %f", match.RelevanceScore)
	}
	if match.Rank != 1 {
		t.Errorf("unexpected rank: %d", match.Rank)
	}
}

func TestRoundTrip_PostingToMatch(t *testing.T) {
	p := samplePosting()
	match := MatchFromFields(Metadata(p), 0.5, 3)

	if match.Skills != p.SkillsRaw {
		t.Errorf("skills did not survive round trip: %q != %q", match.Skills, p.SkillsRaw)
	}
	if match.Industry != p.Industry {
		t.Errorf("industry did not survive round trip")
	}
}
