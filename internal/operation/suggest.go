package operation

import (
	"context"
	"strings"
)

// Suggestions returns the distinct descriptions already in use, most recent first.
// Descriptions differing only in case or surrounding space count once.
func (s *Service) Suggestions(ctx context.Context) ([]string, error) {
	ops, err := s.repo.ListOperations(ctx, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(ops))
	suggestions := make([]string, 0, len(ops))

	for i := len(ops) - 1; i >= 0; i-- {
		desc := strings.TrimSpace(ops[i].Description)
		key := strings.ToLower(desc)

		if desc == "" || seen[key] {
			continue
		}

		seen[key] = true
		suggestions = append(suggestions, desc)
	}

	return suggestions, nil
}
