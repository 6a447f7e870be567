package normalize

import "testing"

func TestEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"already canonical", "bob@example.com", "bob@example.com"},
		{"trim and lowercase", "  Bob@Example.COM \t", "bob@example.com"},
		{"fullwidth folds under NFKC", "\uff42\uff4f\uff42@example.com", "bob@example.com"},
		{"zero width removed", "bo\u200bb@example.com", "bob@example.com"},
		{"control chars removed", "bob\x00@example.com", "bob@example.com"},
		{"invalid utf8 dropped", string([]byte{'b', 0xff, 'o', 'b'}) + "@x.io", "bob@x.io"},
		{"blank", "   ", ""},
		{"unicode lowercase", "ÉLODIE@Exemple.fr", "élodie@exemple.fr"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Email(tc.in); got != tc.out {
				t.Fatalf("Email(%q) = %q want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestEmailIdempotent(t *testing.T) {
	t.Parallel()
	for _, in := range []string{" A@B.C ", "\uff2d\uff49\uff58@Case.org", "plain@host"} {
		once := Email(in)
		if twice := Email(once); twice != once {
			t.Fatalf("Email not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in  string
		out string
	}{
		{"Ada Lovelace", "Ada Lovelace"},
		{"  Ada \n\t Lovelace  ", "Ada Lovelace"},
		{"Zoe\u200d", "Zoe"},
		{"école", "école"},
		{"\x07", ""},
	}
	for _, tc := range tests {
		if got := Name(tc.in); got != tc.out {
			t.Fatalf("Name(%q) = %q want %q", tc.in, got, tc.out)
		}
	}
}

func TestSanitizeFastPath(t *testing.T) {
	t.Parallel()
	in := "line one\nline two\ttabbed"
	if got := Sanitize(in); got != in {
		t.Fatalf("Sanitize changed clean input: %q", got)
	}
	if got := Sanitize("a\x1bb\x7fc"); got != "abc" {
		t.Fatalf("Sanitize = %q", got)
	}
}
