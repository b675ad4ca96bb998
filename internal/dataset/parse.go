package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	skillSepRe  = regexp.MustCompile(`[|,;]+`)
	salaryNumRe = regexp.MustCompile(`[\d,]+`)
	expNumRe    = regexp.MustCompile(`\d+`)
)

// SplitSkills tokenizes a skills column value on "|", "," and ";",
// trimming and lowercasing each token and dropping empties.
func SplitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var skills []string
	for _, tok := range skillSepRe.Split(s, -1) {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			skills = append(skills, tok)
		}
	}
	return skills
}

// ParseSalary extracts a numeric salary from free-form text. Ranges average
// to a single value; "Not Disclosed" and unparsable values return nil.
func ParseSalary(s string) *float64 {
	if strings.TrimSpace(s) == "" || strings.Contains(s, "Not Disclosed") {
		return nil
	}

	matches := salaryNumRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}

	var values []int64
	for _, m := range matches {
		v, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
		if err != nil {
			return nil
		}
		values = append(values, v)
	}

	return averageOf(values)
}

// ParseExperience extracts years of experience from free-form text like
// "5 - 10 yrs". Ranges average; unparsable values return nil.
func ParseExperience(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	matches := expNumRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}

	var values []int64
	for _, m := range matches {
		v, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil
		}
		values = append(values, v)
	}

	return averageOf(values)
}

// averageOf returns the integer average for ranges, or the single value.
func averageOf(values []int64) *float64 {
	var sum int64
	for _, v := range values {
		sum += v
	}
	avg := float64(sum / int64(len(values)))
	return &avg
}
