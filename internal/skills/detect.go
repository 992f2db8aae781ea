package skills

import (
	"strings"
)

// Scan returns the catalog skills mentioned in text, in catalog order.
func Scan(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return []string{}
	}

	found := make([]string, 0)
	for _, skill := range Catalog {
		if contains(normalized, skill.keyword()) {
			found = append(found, skill.Name)
		}
	}
	return found
}

// FindMissing returns up to limit catalog skills that the job description asks
// for and the profile lacks. A profile skill covers a catalog skill when either
// contains the other, ignoring case. Without profile skills or a description
// nothing is reported.
func FindMissing(profileSkills []string, description string, limit int) []string {
	desc := Normalize(description)
	if len(profileSkills) == 0 || desc == "" {
		return []string{}
	}

	owned := make([]string, 0, len(profileSkills))
	for _, s := range profileSkills {
		if s = Normalize(s); s != "" {
			owned = append(owned, s)
		}
	}

	missing := make([]string, 0)
	for _, skill := range Catalog {
		keyword := skill.keyword()
		if !contains(desc, keyword) || covered(owned, keyword) {
			continue
		}
		missing = append(missing, skill.Name)
		if limit > 0 && len(missing) == limit {
			break
		}
	}
	return missing
}

func covered(owned []string, keyword string) bool {
	for _, s := range owned {
		if strings.Contains(s, keyword) || strings.Contains(keyword, s) {
			return true
		}
	}
	return false
}

// Merge joins skill lists keeping the first spelling of every skill, compared
// case-insensitively. Blank entries are dropped.
func Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, s := range list {
			s = strings.TrimSpace(s)
			key := strings.ToLower(s)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
