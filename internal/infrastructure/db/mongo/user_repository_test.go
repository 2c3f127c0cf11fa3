package mongo

import (
	"regexp"
	"testing"
)

func TestSearchRegex_QuotesMetacharacters(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"open paren", "("},
		{"unbalanced bracket", "[ab"},
		{"dot star", ".*"},
		{"plus", "c++"},
		{"plain", "alice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filter := searchRegex(tc.input)

			pattern, ok := filter["$regex"].(string)
			if !ok {
				t.Fatalf("expected string pattern, got %T", filter["$regex"])
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				t.Fatalf("pattern %q does not compile: %v", pattern, err)
			}
			// quoted input must match itself literally
			if !re.MatchString(tc.input) {
				t.Fatalf("pattern %q does not match its own input %q", pattern, tc.input)
			}
			if filter["$options"] != "i" {
				t.Fatalf("expected case-insensitive option, got %v", filter["$options"])
			}
		})
	}
}

func TestSearchRegex_DotDoesNotOvermatch(t *testing.T) {
	filter := searchRegex("a.c")
	re := regexp.MustCompile(filter["$regex"].(string))
	if re.MatchString("abc") {
		t.Fatalf("dot must be literal, pattern %q matched %q", filter["$regex"], "abc")
	}
	if !re.MatchString("a.c") {
		t.Fatalf("pattern %q must match the literal input", filter["$regex"])
	}
}

func TestListOptions_Caps(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", 0, 0, 0, 20},
		{"negative page", -3, 10, 0, 10},
		{"over cap", 1, 1000, 0, 20},
		{"second page", 2, 50, 50, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := listOptions(tc.page, tc.limit)
			if *opts.Skip != tc.wantSkip || *opts.Limit != tc.wantLimit {
				t.Fatalf("got skip=%d limit=%d, want skip=%d limit=%d",
					*opts.Skip, *opts.Limit, tc.wantSkip, tc.wantLimit)
			}
		})
	}
}
