package syscallmd

import (
	"errors"
	"testing"
)

func callNames(calls []SystemCall) []string {
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, call.Name)
	}
	return names
}

func TestFilter(t *testing.T) {
	calls := []SystemCall{
		{Name: "read"},
		{Name: "readv"},
		{Name: "write"},
		{Name: "pread64"},
		{Name: "gettid"},
	}

	tests := []struct {
		name string
		opts []FilterOpt
		want []string
	}{
		{"no options", nil, []string{"read", "readv", "write", "pread64", "gettid"}},
		{"empty query", []FilterOpt{WithFindSubstrings(nil)}, []string{"read", "readv", "write", "pread64", "gettid"}},
		{"substring", []FilterOpt{WithFindSubstrings([]string{"read"})}, []string{"read", "readv", "pread64"}},
		{"substring keeps source order", []FilterOpt{WithFindSubstrings([]string{"tid", "write"})}, []string{"write", "gettid"}},
		{"exact", []FilterOpt{WithExactMatch([]string{"read"})}, []string{"read"}},
		{"exact several", []FilterOpt{WithExactMatch([]string{"gettid", "read"})}, []string{"read", "gettid"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Filter(calls, tc.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotNames := callNames(got)
			if len(gotNames) != len(tc.want) {
				t.Fatalf("got %v, want %v", gotNames, tc.want)
			}
			for i := range tc.want {
				if gotNames[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", gotNames, tc.want)
				}
			}
		})
	}
}

func TestFilterNoMatches(t *testing.T) {
	calls := []SystemCall{{Name: "read"}}

	if _, err := Filter(calls, WithExactMatch([]string{"rea"})); !errors.Is(err, ErrNoMatches) {
		t.Errorf("exact: expected ErrNoMatches, got %v", err)
	}
	if _, err := Filter(calls, WithFindSubstrings([]string{"write"})); !errors.Is(err, ErrNoMatches) {
		t.Errorf("substring: expected ErrNoMatches, got %v", err)
	}
}
