package analytics

import (
	"math"
	"testing"

	"github.com/careerlens/careerlens/internal/domain"
)

func f(v float64) *float64 { return &v }

func testPostings() []domain.Posting {
	return []domain.Posting{
		{
			ID:              "job_0",
			Title:           "Software Engineer",
			Skills:          []string{"go", "redis"},
			Industry:        "IT-Software",
			RoleCategory:    "Programming",
			SalaryNumeric:   f(500000),
			ExperienceYears: f(2),
		},
		{
			ID:              "job_1",
			Title:           "Senior Software Engineer",
			Skills:          []string{"go", "kubernetes"},
			Industry:        "IT-Software",
			RoleCategory:    "Programming",
			SalaryNumeric:   f(900000),
			ExperienceYears: f(6),
		},
		{
			ID:              "job_2",
			Title:           "Data Analyst",
			Skills:          []string{"sql", "excel"},
			Industry:        "Analytics",
			RoleCategory:    "Analytics",
			SalaryNumeric:   f(400000),
			ExperienceYears: f(3),
		},
		{
			ID:              "job_3",
			Title:           "Software Engineer",
			Skills:          []string{"java", "go"},
			Industry:        "Banking",
			RoleCategory:    "Programming",
			SalaryNumeric:   nil, // not disclosed
			ExperienceYears: f(4),
		},
		{
			ID:              "job_4",
			Title:           "Engineering Manager",
			Skills:          []string{"go", "leadership"},
			Industry:        "IT-Software",
			RoleCategory:    "Management",
			SalaryNumeric:   f(2000000),
			ExperienceYears: f(12),
		},
	}
}

func TestSalaryInsights(t *testing.T) {
	svc := New(testPostings())

	got := svc.SalaryInsights([]string{"Go"}, nil)

	if got.RelevantJobsCount != 4 {
		t.Errorf("relevant jobs = %d, expected 4", got.RelevantJobsCount)
	}
	if got.Stats == nil {
		t.Fatal("expected stats")
	}
	// Disclosed go salaries: 500000, 900000, 2000000.
	if got.Stats.SampleSize != 3 {
		t.Errorf("sample size = %d, expected 3", got.Stats.SampleSize)
	}
	if got.Stats.Median != 900000 {
		t.Errorf("median = %f, expected 900000", got.Stats.Median)
	}
	if got.Stats.Min != 500000 || got.Stats.Max != 2000000 {
		t.Errorf("min/max = %f/%f", got.Stats.Min, got.Stats.Max)
	}
	wantMean := (500000.0 + 900000.0 + 2000000.0) / 3
	if math.Abs(got.Stats.Mean-wantMean) > 1e-6 {
		t.Errorf("mean = %f, expected %f", got.Stats.Mean, wantMean)
	}
	// Interpolated quartiles over [500000 900000 2000000].
	if got.Stats.Percentile25 != 700000 {
		t.Errorf("p25 = %f, expected 700000", got.Stats.Percentile25)
	}
	if got.Stats.Percentile75 != 1450000 {
		t.Errorf("p75 = %f, expected 1450000", got.Stats.Percentile75)
	}
}

func TestSalaryInsights_ExperienceBand(t *testing.T) {
	svc := New(testPostings())

	exp := 5
	got := svc.SalaryInsights([]string{"go"}, &exp)

	// Band 3..7 keeps job_1 (6y) and job_3 (4y, undisclosed salary).
	if got.RelevantJobsCount != 2 {
		t.Errorf("relevant jobs = %d, expected 2", got.RelevantJobsCount)
	}
	if got.Stats == nil || got.Stats.SampleSize != 1 {
		t.Fatalf("expected single disclosed salary, got %+v", got.Stats)
	}
	if got.Stats.Median != 900000 {
		t.Errorf("median = %f, expected 900000", got.Stats.Median)
	}
}

func TestSalaryInsights_NoData(t *testing.T) {
	svc := New(testPostings())

	got := svc.SalaryInsights([]string{"cobol"}, nil)
	if got.Stats != nil {
		t.Errorf("expected no stats, got %+v", got.Stats)
	}
	if got.Message == "" {
		t.Error("expected a no-data message")
	}
}

func TestSkillDemand(t *testing.T) {
	svc := New(testPostings())

	got := svc.SkillDemand([]string{"Go", "sql", "rust"})

	if len(got.UserSkillDemand) != 3 {
		t.Fatalf("expected 3 user entries, got %d", len(got.UserSkillDemand))
	}
	// Input order and casing preserved; counts matched case-insensitively.
	if got.UserSkillDemand[0].Name != "Go" || got.UserSkillDemand[0].Count != 4 {
		t.Errorf("go demand = %+v", got.UserSkillDemand[0])
	}
	if got.UserSkillDemand[1].Count != 1 {
		t.Errorf("sql demand = %+v", got.UserSkillDemand[1])
	}
	if got.UserSkillDemand[2].Count != 0 {
		t.Errorf("rust demand = %+v", got.UserSkillDemand[2])
	}

	if len(got.TopMarketSkills) == 0 || got.TopMarketSkills[0].Name != "go" {
		t.Errorf("expected go to lead the market, got %+v", got.TopMarketSkills)
	}
}

func TestIndustryInsights(t *testing.T) {
	svc := New(testPostings())

	got := svc.IndustryInsights([]string{"go"})

	if len(got.IndustryDistribution) != 2 {
		t.Fatalf("expected 2 industries, got %+v", got.IndustryDistribution)
	}
	if got.IndustryDistribution[0].Name != "IT-Software" || got.IndustryDistribution[0].Count != 3 {
		t.Errorf("top industry = %+v", got.IndustryDistribution[0])
	}
	if got.RoleDistribution[0].Name != "Programming" || got.RoleDistribution[0].Count != 3 {
		t.Errorf("top role = %+v", got.RoleDistribution[0])
	}
}

func TestProgressionPath(t *testing.T) {
	svc := New(testPostings())

	got := svc.ProgressionPath("software engineer")

	// Title substring match is case-insensitive: job_0, job_1, job_3.
	early, ok := got["0-2"]
	if !ok {
		t.Fatal("expected 0-2 range")
	}
	if len(early.CommonTitles) != 1 || early.CommonTitles[0].Name != "Software Engineer" {
		t.Errorf("0-2 titles = %+v", early.CommonTitles)
	}
	if early.AvgSalary == nil || *early.AvgSalary != 500000 {
		t.Errorf("0-2 avg salary = %v", early.AvgSalary)
	}

	mid, ok := got["3-5"]
	if !ok {
		t.Fatal("expected 3-5 range")
	}
	// Only job_3 (4y), salary undisclosed.
	if mid.AvgSalary != nil {
		t.Errorf("expected nil avg salary, got %v", *mid.AvgSalary)
	}
	if len(mid.TopSkills) != 2 {
		t.Errorf("3-5 skills = %+v", mid.TopSkills)
	}

	senior, ok := got["6-10"]
	if !ok {
		t.Fatal("expected 6-10 range")
	}
	if senior.CommonTitles[0].Name != "Senior Software Engineer" {
		t.Errorf("6-10 titles = %+v", senior.CommonTitles)
	}

	if _, ok := got["10+"]; ok {
		t.Error("10+ range must be absent: no matching titles past 10 years")
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	cases := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.25, 17.5},
		{0.5, 25},
		{0.75, 32.5},
		{1, 40},
	}
	for _, tc := range cases {
		if got := quantile(sorted, tc.p); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("quantile(%v) = %f, expected %f", tc.p, got, tc.want)
		}
	}

	if got := quantile([]float64{42}, 0.5); got != 42 {
		t.Errorf("single-element quantile = %f", got)
	}
}

func TestTopEntries_OrderAndCap(t *testing.T) {
	counts := map[string]int{"b": 3, "a": 3, "c": 9, "d": 1}

	got := topEntries(counts, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Name != "c" || got[1].Name != "a" || got[2].Name != "b" {
		t.Errorf("unexpected order: %+v", got)
	}
}
