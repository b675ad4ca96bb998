// Package analytics computes market statistics over the loaded postings:
// salary distributions, skill demand, industry breakdowns, and progression
// paths. Everything runs in memory against the immutable posting slice.
package analytics

import (
	"sort"
	"strings"

	"github.com/careerlens/careerlens/internal/domain"
)

// Experience ranges for progression paths, in years.
var progressionRanges = []string{"0-2", "3-5", "6-10", "10+"}

const (
	topMarketSkills     = 20
	topIndustries       = 10
	topRoles            = 10
	topStageTitles      = 5
	topStageSkills      = 10
	experienceBandYears = 2
)

const noSalaryDataMessage = "No salary data available for your profile"

// CountEntry is one name with its posting count. Slices of entries are
// ordered by descending count, name ascending on ties.
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SalaryStats summarizes the salary distribution of matching postings.
type SalaryStats struct {
	Median       float64 `json:"median"`
	Mean         float64 `json:"mean"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	SampleSize   int     `json:"sample_size"`
}

// SalaryInsights is the salary analysis result. Stats is nil and Message set
// when no matching posting discloses a salary.
type SalaryInsights struct {
	Stats             *SalaryStats `json:"stats,omitempty"`
	RelevantJobsCount int          `json:"relevant_jobs_count"`
	Message           string       `json:"message,omitempty"`
}

// SkillDemand reports posting counts for the caller's skills next to the
// overall market leaders.
type SkillDemand struct {
	UserSkillDemand []CountEntry `json:"user_skill_demand"`
	TopMarketSkills []CountEntry `json:"top_market_skills"`
}

// IndustryInsights breaks skill-matching postings down by industry and role
// category.
type IndustryInsights struct {
	IndustryDistribution []CountEntry `json:"industry_distribution"`
	RoleDistribution     []CountEntry `json:"role_distribution"`
}

// ProgressionStage describes postings within one experience range.
type ProgressionStage struct {
	CommonTitles []CountEntry `json:"common_titles"`
	AvgSalary    *float64     `json:"avg_salary"`
	TopSkills    []CountEntry `json:"top_skills"`
}

// Service answers analytics queries over the loaded postings.
type Service struct {
	postings []domain.Posting
}

// New creates a Service over postings. The slice is read, never mutated.
func New(postings []domain.Posting) *Service {
	return &Service{postings: postings}
}

// SalaryInsights aggregates disclosed salaries over postings sharing at
// least one of userSkills. With experienceYears set, only postings within
// two years of it count.
func (s *Service) SalaryInsights(userSkills []string, experienceYears *int) SalaryInsights {
	wanted := lowerSet(userSkills)

	var relevant int
	var salaries []float64
	for i := range s.postings {
		p := &s.postings[i]
		if !sharesSkill(p, wanted) {
			continue
		}
		if experienceYears != nil && !withinExperienceBand(p, *experienceYears) {
			continue
		}
		relevant++
		if p.SalaryNumeric != nil {
			salaries = append(salaries, *p.SalaryNumeric)
		}
	}

	if len(salaries) == 0 {
		return SalaryInsights{Message: noSalaryDataMessage, RelevantJobsCount: relevant}
	}

	sort.Float64s(salaries)
	return SalaryInsights{
		Stats: &SalaryStats{
			Median:       quantile(salaries, 0.5),
			Mean:         mean(salaries),
			Min:          salaries[0],
			Max:          salaries[len(salaries)-1],
			Percentile25: quantile(salaries, 0.25),
			Percentile75: quantile(salaries, 0.75),
			SampleSize:   len(salaries),
		},
		RelevantJobsCount: relevant,
	}
}

// SkillDemand counts postings mentioning each of userSkills and returns the
// market's most demanded skills overall.
func (s *Service) SkillDemand(userSkills []string) SkillDemand {
	counts := make(map[string]int)
	for i := range s.postings {
		for _, skill := range s.postings[i].Skills {
			counts[skill]++
		}
	}

	user := make([]CountEntry, 0, len(userSkills))
	for _, skill := range userSkills {
		user = append(user, CountEntry{
			Name:  skill,
			Count: counts[strings.ToLower(skill)],
		})
	}

	return SkillDemand{
		UserSkillDemand: user,
		TopMarketSkills: topEntries(counts, topMarketSkills),
	}
}

// IndustryInsights breaks down the industries and role categories of
// postings sharing at least one of userSkills.
func (s *Service) IndustryInsights(userSkills []string) IndustryInsights {
	wanted := lowerSet(userSkills)

	industries := make(map[string]int)
	roles := make(map[string]int)
	for i := range s.postings {
		p := &s.postings[i]
		if !sharesSkill(p, wanted) {
			continue
		}
		if p.Industry != "" {
			industries[p.Industry]++
		}
		if p.RoleCategory != "" {
			roles[p.RoleCategory]++
		}
	}

	return IndustryInsights{
		IndustryDistribution: topEntries(industries, topIndustries),
		RoleDistribution:     topEntries(roles, topRoles),
	}
}

// ProgressionPath groups postings whose title contains currentRole into
// experience ranges and summarizes each range. Ranges with no postings are
// omitted.
func (s *Service) ProgressionPath(currentRole string) map[string]ProgressionStage {
	role := strings.ToLower(currentRole)

	var similar []*domain.Posting
	for i := range s.postings {
		if strings.Contains(strings.ToLower(s.postings[i].Title), role) {
			similar = append(similar, &s.postings[i])
		}
	}

	out := make(map[string]ProgressionStage)
	for _, rng := range progressionRanges {
		var stage []*domain.Posting
		for _, p := range similar {
			if p.ExperienceYears != nil && inRange(rng, *p.ExperienceYears) {
				stage = append(stage, p)
			}
		}
		if len(stage) == 0 {
			continue
		}
		out[rng] = summarizeStage(stage)
	}
	return out
}

func summarizeStage(postings []*domain.Posting) ProgressionStage {
	titles := make(map[string]int)
	skills := make(map[string]int)
	var salarySum float64
	var salaryCount int

	for _, p := range postings {
		titles[p.Title]++
		for _, skill := range p.Skills {
			skills[skill]++
		}
		if p.SalaryNumeric != nil {
			salarySum += *p.SalaryNumeric
			salaryCount++
		}
	}

	stage := ProgressionStage{
		CommonTitles: topEntries(titles, topStageTitles),
		TopSkills:    topEntries(skills, topStageSkills),
	}
	if salaryCount > 0 {
		avg := salarySum / float64(salaryCount)
		stage.AvgSalary = &avg
	}
	return stage
}

func inRange(rng string, years float64) bool {
	switch rng {
	case "0-2":
		return years <= 2
	case "3-5":
		return years >= 3 && years <= 5
	case "6-10":
		return years >= 6 && years <= 10
	default:
		return years > 10
	}
}

func lowerSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

func sharesSkill(p *domain.Posting, wanted map[string]struct{}) bool {
	for _, skill := range p.Skills {
		if _, ok := wanted[skill]; ok {
			return true
		}
	}
	return false
}

func withinExperienceBand(p *domain.Posting, years int) bool {
	if p.ExperienceYears == nil {
		return false
	}
	v := *p.ExperienceYears
	return v >= float64(years-experienceBandYears) && v <= float64(years+experienceBandYears)
}

// topEntries orders counts by descending count, name ascending on ties, and
// keeps the first n.
func topEntries(counts map[string]int, n int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, CountEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func mean(sorted []float64) float64 {
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

// quantile computes the p-quantile of a sorted sample with linear
// interpolation between adjacent ranks.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
