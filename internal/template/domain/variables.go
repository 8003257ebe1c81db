package domain

import (
	"regexp"
	"slices"
	"strconv"
)

var variablePattern = regexp.MustCompile(`\{\{(\d{1,3})\}\}`)

// Variables returns the sorted, de-duplicated {{n}} indices used in body.
func Variables(body string) []int {
	var out []int
	for _, m := range variablePattern.FindAllStringSubmatch(body, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Fill substitutes {{n}} with values[n]. Placeholders without a value are kept.
func Fill(body string, values map[int]string) string {
	return variablePattern.ReplaceAllStringFunc(body, func(m string) string {
		n, err := strconv.Atoi(m[2 : len(m)-2])
		if err != nil {
			return m
		}
		if v, ok := values[n]; ok {
			return v
		}
		return m
	})
}

// missingVariables returns the indices absent from 1..max(vars).
func missingVariables(vars []int) []int {
	if len(vars) == 0 {
		return nil
	}
	var missing []int
	next := 0
	for want := 1; want <= vars[len(vars)-1]; want++ {
		if next < len(vars) && vars[next] == want {
			next++
			continue
		}
		missing = append(missing, want)
	}
	return missing
}
