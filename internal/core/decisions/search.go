package decisions

import (
	"sort"
	"strings"
)

// Relevance weights per matched query term.
const (
	titleWeight   = 10
	authorWeight  = 5
	contentWeight = 3
)

// FilterOptions combines a free-text query with date and author narrowing.
type FilterOptions struct {
	Query  string
	From   string // inclusive ISO date
	To     string // inclusive ISO date
	Author string // case-insensitive substring
}

// Search ranks entries against a whitespace-split query. Each matched term
// scores its field weight; scores sum across terms, entries scoring zero
// are excluded, and ties keep their incoming order.
func Search(entries []Entry, query string) []Entry {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return entries
	}

	type scored struct {
		entry Entry
		score int
	}

	var ranked []scored
	for _, entry := range entries {
		score := relevance(entry, terms)
		if score > 0 {
			ranked = append(ranked, scored{entry: entry, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]Entry, len(ranked))
	for i, r := range ranked {
		out[i] = r.entry
	}
	return out
}

func relevance(entry Entry, terms []string) int {
	title := strings.ToLower(entry.Title)
	content := strings.ToLower(entry.Content)
	author := strings.ToLower(entry.Author)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleWeight
		}
		if strings.Contains(content, term) {
			score += contentWeight
		}
		if author != "" && strings.Contains(author, term) {
			score += authorWeight
		}
	}
	return score
}

// FilterByDateRange keeps entries whose date falls inside [from, to]
// inclusive. Entries without a date are excluded. Empty bounds are open.
func FilterByDateRange(entries []Entry, from, to string) []Entry {
	var out []Entry
	for _, entry := range entries {
		if entry.Date == "" {
			continue
		}
		if from != "" && entry.Date < from {
			continue
		}
		if to != "" && entry.Date > to {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// FilterByAuthor keeps entries whose author contains the given substring,
// case-insensitively. Entries without an author are excluded.
func FilterByAuthor(entries []Entry, author string) []Entry {
	needle := strings.ToLower(author)

	var out []Entry
	for _, entry := range entries {
		if entry.Author == "" {
			continue
		}
		if strings.Contains(strings.ToLower(entry.Author), needle) {
			out = append(out, entry)
		}
	}
	return out
}

// Filter applies the search first, preserving its rank order, then narrows
// by date range and author.
func Filter(entries []Entry, opts FilterOptions) []Entry {
	out := entries
	if opts.Query != "" {
		out = Search(out, opts.Query)
	}
	if opts.From != "" || opts.To != "" {
		out = FilterByDateRange(out, opts.From, opts.To)
	}
	if opts.Author != "" {
		out = FilterByAuthor(out, opts.Author)
	}
	return out
}
