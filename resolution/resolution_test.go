package resolution

import (
	"errors"
	"testing"
)

func TestResolveTable(t *testing.T) {
	cases := []struct {
		token    string
		counties bool
		want     string
	}{
		{"l", false, "110m"},
		{"l", true, "20m"},
		{"h", false, "10m"},
		{"h", true, "500k"},
		{"m", false, "50m"},
		{"m", true, "5m"},
		{"xyz", false, "50m"},
		{"xyz", true, "5m"},
		{"", false, "50m"},
		{"L", false, "50m"},
	}
	for _, c := range cases {
		if got := Resolve(c.token, c.counties); got != c.want {
			t.Errorf("Resolve(%q, %v): got %q, want %q", c.token, c.counties, got, c.want)
		}
	}
}

func TestResolveDigitsIdentity(t *testing.T) {
	for _, s := range []string{"50m", "500k", "1", "abc9", "10m", "٣x", "h1"} {
		for _, counties := range []bool{false, true} {
			if got := Resolve(s, counties); got != s {
				t.Errorf("Resolve(%q, %v): got %q, want identity", s, counties, got)
			}
		}
	}
}

func TestResolveTotal(t *testing.T) {
	inputs := []string{"", " ", "\x00", "medium", "hh", "ll", "\xff\xfe", "🌍", "m\n"}
	for _, s := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Resolve(%q) panicked: %v", s, r)
				}
			}()
			if got := Resolve(s, false); got == "" {
				t.Errorf("Resolve(%q): got empty scale", s)
			}
		}()
	}
}

func TestResolveIdempotent(t *testing.T) {
	for _, s := range []string{"l", "m", "h", "zzz", "50m"} {
		a, b := Resolve(s, true), Resolve(s, true)
		if a != b {
			t.Errorf("Resolve(%q) not stable: %q then %q", s, a, b)
		}
	}
}

func TestClassify(t *testing.T) {
	if got := Classify("l"); got != Low {
		t.Errorf("got %v, want %v", got, Low)
	}
	if got := Classify("h"); got != High {
		t.Errorf("got %v, want %v", got, High)
	}
	if got := Classify("medium"); got != Medium {
		t.Errorf("got %v, want %v", got, Medium)
	}
	if Low.String() != "low" || Medium.String() != "medium" || High.String() != "high" {
		t.Error("unexpected bucket names")
	}
}

func TestResolveStrict(t *testing.T) {
	got, err := ResolveStrict("h", true)
	if err != nil || got != "500k" {
		t.Errorf("got %q %v, want 500k", got, err)
	}
	got, err = ResolveStrict("500k", false)
	if err != nil || got != "500k" {
		t.Errorf("got %q %v, want 500k", got, err)
	}
	if _, err := ResolveStrict("xyz", false); !errors.Is(err, ErrUnknownToken) {
		t.Errorf("got %v, want ErrUnknownToken", err)
	}
	if _, err := ResolveStrict("", false); !errors.Is(err, ErrUnknownToken) {
		t.Errorf("got %v, want ErrUnknownToken", err)
	}
}
