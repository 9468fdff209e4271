// ABOUTME: Search and suggestion CLI commands
// ABOUTME: Prints highlighted matches and query completions
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/callbook/search"
	"github.com/harperreed/callbook/store"
)

// SearchCommand searches notes and marks the matched span with [brackets].
func SearchCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	_ = fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is required")
	}

	ctx := context.Background()
	notes := st.Notes(ctx)
	results := search.Search(notes, query)
	if len(results) == 0 {
		fmt.Fprintln(stdout, "No matches")
	} else {
		w := newTable()
		for _, r := range results {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.MatchType, r.Note.ContactName, highlight(r), r.Note.ID)
		}
		_ = w.Flush()
	}

	if suggestions := search.Suggest(query, st.Contacts(ctx), notes); len(suggestions) > 0 {
		fmt.Fprintf(stdout, "\nDid you mean: %s\n", strings.Join(suggestions, ", "))
	}
	return nil
}

func highlight(r search.Result) string {
	text := []rune(r.MatchText)
	if r.HighlightStart < 0 || r.HighlightEnd > len(text) || r.HighlightStart >= r.HighlightEnd {
		return r.MatchText
	}
	return string(text[:r.HighlightStart]) + "[" + string(text[r.HighlightStart:r.HighlightEnd]) + "]" + string(text[r.HighlightEnd:])
}

// SuggestCommand prints completions for a partial query.
func SuggestCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()
	for _, s := range search.Suggest(strings.Join(fs.Args(), " "), st.Contacts(ctx), st.Notes(ctx)) {
		fmt.Fprintln(stdout, s)
	}
	return nil
}
