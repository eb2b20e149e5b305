package syscallmd

import "strings"

type filterOpts struct {
	exactMatch bool
	find       []string
}

type FilterOpt func(*filterOpts)

// WithExactMatch keeps only the calls whose name is one of find.
func WithExactMatch(find []string) FilterOpt {
	return func(opts *filterOpts) {
		opts.exactMatch = true
		opts.find = find
	}
}

// WithFindSubstrings keeps the calls whose name contains any of find.
func WithFindSubstrings(find []string) FilterOpt {
	return func(opts *filterOpts) {
		opts.find = find
	}
}

// Filter selects calls by name, keeping their order. Without options every
// call is returned. ErrNoMatches is returned when a query matches nothing.
func Filter(calls []SystemCall, opts ...FilterOpt) ([]SystemCall, error) {
	var fo filterOpts
	for _, opt := range opts {
		opt(&fo)
	}

	if len(fo.find) == 0 {
		return calls, nil
	}

	matched := make([]SystemCall, 0, len(fo.find))
	for _, call := range calls {
		for _, str := range fo.find {
			if fo.exactMatch && call.Name == str || !fo.exactMatch && strings.Contains(call.Name, str) {
				matched = append(matched, call)
				break
			}
		}
	}

	if len(matched) == 0 {
		return nil, ErrNoMatches
	}
	return matched, nil
}
