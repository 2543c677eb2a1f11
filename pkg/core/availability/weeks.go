package availability

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// ParseWeeks expands a week expression such as "1-3,7,9-10" into sorted,
// de-duplicated week numbers within 1..weeks.
// An empty expression selects every week of the horizon.
func ParseWeeks(expr string, weeks int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		all := make([]int, weeks)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	for _, raw := range strings.Split(expr, ",") {
		token := strings.TrimSpace(raw)
		from, to, err := parseWeekToken(token)
		if err != nil {
			return nil, &model.ConfigError{Field: "week expression", Value: expr, Reason: err.Error()}
		}
		if from > to {
			return nil, &model.ConfigError{Field: "week expression", Value: expr, Reason: fmt.Sprintf("range %q is reversed", token)}
		}
		if from < 1 || to > weeks {
			return nil, &model.ConfigError{Field: "week expression", Value: expr, Reason: fmt.Sprintf("%q is outside weeks 1-%d", token, weeks)}
		}
		for w := from; w <= to; w++ {
			seen[w] = true
		}
	}

	result := make([]int, 0, len(seen))
	for w := range seen {
		result = append(result, w)
	}
	slices.Sort(result)
	return result, nil
}

// parseWeekToken parses "n" or "a-b"
func parseWeekToken(token string) (int, int, error) {
	if token == "" {
		return 0, 0, fmt.Errorf("empty token")
	}

	start, end, isRange := strings.Cut(token, "-")
	if !isRange {
		n, err := strconv.Atoi(token)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed token %q", token)
		}
		return n, n, nil
	}

	from, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed range %q", token)
	}
	to, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed range %q", token)
	}
	return from, to, nil
}
