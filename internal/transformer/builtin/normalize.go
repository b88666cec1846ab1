// Package builtin contains simple, reusable transformers used in the ETL.
package builtin

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"booketl/pkg/records"
)

// Normalize cleans string values in place: trims edge whitespace, collapses
// non-breaking spaces, and optionally title-cases selected fields so that
// "fantasy" and "Fantasy" group as one category downstream.
type Normalize struct {
	// TitleFields lists field names to title-case (e.g., "author", "category").
	TitleFields []string
}

func (n Normalize) Apply(in []records.Record) []records.Record {
	title := cases.Title(language.English)
	titled := make(map[string]struct{}, len(n.TitleFields))
	for _, f := range n.TitleFields {
		titled[f] = struct{}{}
	}

	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
			if _, ok := titled[k]; ok {
				s = title.String(s)
			}
			r[k] = s
		}
	}
	return in
}
