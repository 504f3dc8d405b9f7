package golden

import (
	"fmt"
	"strconv"
	"strings"

	gferrors "goldrun/internal/errors"
)

// maxCaseID is the largest id that still fits the two-digit naming convention
const maxCaseID = 99

// ParsePlan parses a plan expression such as "0,1,2,10-16" into ids, keeping the given order.
func ParsePlan(expr string) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, gferrors.Config("case plan is empty")
	}

	var plan []int
	seen := make(map[int]bool)
	add := func(id int) error {
		if id < 0 || id > maxCaseID {
			return gferrors.Configf("case id %d out of range 0-%d", id, maxCaseID)
		}
		if seen[id] {
			return gferrors.Configf("case id %d listed twice", id)
		}
		seen[id] = true
		plan = append(plan, id)
		return nil
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			if err := add(id); err != nil {
				return nil, err
			}
			continue
		}

		from, err := parseID(lo)
		if err != nil {
			return nil, err
		}
		to, err := parseID(hi)
		if err != nil {
			return nil, err
		}
		if from > to {
			return nil, gferrors.Configf("descending range %q", part)
		}
		for id := from; id <= to; id++ {
			if err := add(id); err != nil {
				return nil, err
			}
		}
	}

	if len(plan) == 0 {
		return nil, gferrors.Config("case plan is empty")
	}
	return plan, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, gferrors.WrapConfig(err, fmt.Sprintf("invalid case id %q", s))
	}
	return id, nil
}

// FormatPlan renders ids the way ParsePlan accepts them, collapsing ascending runs.
func FormatPlan(ids []int) string {
	var parts []string
	for i := 0; i < len(ids); {
		j := i
		for j+1 < len(ids) && ids[j+1] == ids[j]+1 {
			j++
		}
		switch {
		case j-i >= 2:
			parts = append(parts, fmt.Sprintf("%d-%d", ids[i], ids[j]))
		case j > i:
			parts = append(parts, strconv.Itoa(ids[i]), strconv.Itoa(ids[j]))
		default:
			parts = append(parts, strconv.Itoa(ids[i]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
