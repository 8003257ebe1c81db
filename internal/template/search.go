package template

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/zjrosen/wamark/internal/template/domain"
)

func init() {
	algo.Init("default")
}

// Match is one template that matched a fuzzy query.
type Match struct {
	Template  *domain.Template
	Score     int
	Positions []int // rune offsets into the name
}

// FuzzyFilter keeps templates whose name fuzzily matches query, best first.
// Ties keep name order. An empty query returns every template unscored.
func FuzzyFilter(templates []*domain.Template, query string) []Match {
	if strings.TrimSpace(query) == "" {
		matches := make([]Match, len(templates))
		for i, t := range templates {
			matches[i] = Match{Template: t}
		}
		return matches
	}

	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(16384, 1024)

	var matches []Match
	for _, t := range templates {
		chars := util.ToChars([]byte(strings.ToLower(t.Name())))
		result, positions := algo.FuzzyMatchV2(false, false, true, &chars, pattern, true, slab)
		if result.Start < 0 {
			continue
		}
		m := Match{Template: t, Score: result.Score}
		if positions != nil {
			m.Positions = append([]int(nil), *positions...)
			sort.Ints(m.Positions)
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
