package utils

import (
	"bufio"
	"os"
	"strings"
)

// Stoplist holds search terms that are excluded from telemetry counting
type Stoplist struct {
	terms []string
}

// LoadStoplist loads stoplist terms from a file, one per line.
// Lines starting with # are comments. A missing file yields an empty list.
func LoadStoplist(path string) (*Stoplist, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Stoplist{terms: []string{}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" && !strings.HasPrefix(term, "#") {
			terms = append(terms, term)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Stoplist{terms: terms}, nil
}

// Contains checks if a search term matches any stoplist entry.
// Returns (matched, matchedTerm). Matching is case-insensitive.
func (s *Stoplist) Contains(term string) (bool, string) {
	termLower := strings.ToLower(term)

	for _, entry := range s.terms {
		if strings.ToLower(entry) == termLower {
			return true, entry
		}
	}

	return false, ""
}
