package ads

import "strings"

// Select returns exactly one record for the criteria. An id lookup takes the
// first exact match; a URL lookup must match a single record.
func Select(records []Record, c Criteria) (Record, error) {
	switch {
	case c.ID != "":
		for _, r := range records {
			if r.ID == c.ID {
				return r, nil
			}
		}
		return Record{}, &NotFoundError{Field: "id", Value: c.ID}
	case c.URLContains != "":
		var matches []Record
		for _, r := range records {
			if strings.Contains(r.VideoURL, c.URLContains) {
				matches = append(matches, r)
			}
		}
		switch len(matches) {
		case 0:
			return Record{}, &NotFoundError{Field: "url", Value: c.URLContains}
		case 1:
			return matches[0], nil
		default:
			ids := make([]string, len(matches))
			for i, m := range matches {
				ids[i] = m.ID
			}
			return Record{}, &AmbiguousError{Substring: c.URLContains, IDs: ids}
		}
	default:
		return Record{}, ErrNoCriteria
	}
}
