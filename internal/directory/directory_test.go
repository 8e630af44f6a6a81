package directory

import (
	"strings"
	"testing"
)

func TestNormalizeLogin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"domain prefix", `DOMAIN\Bob`, "bob"},
		{"domain suffix", "bob@domain.com", "bob"},
		{"uppercase", "BOB", "bob"},
		{"plain", "bob", "bob"},
		{"surrounding whitespace", "  bob  ", "bob"},
		{"prefix and suffix", `DOMAIN\bob@domain.com`, "bob"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLogin(tt.input); got != tt.want {
				t.Errorf("NormalizeLogin(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUserFilter(t *testing.T) {
	got := UserFilter("bob", "bob@domain.com")
	want := "(|(sAMAccountName=bob)(userPrincipalName=bob@domain.com))"
	if got != want {
		t.Errorf("UserFilter() = %q, want %q", got, want)
	}
}

func TestUserFilterEscapesMetaCharacters(t *testing.T) {
	tests := []struct {
		name    string
		login   string
		escaped string
	}{
		{"wildcard", "bob*", `\2a`},
		{"open paren", "bob(", `\28`},
		{"close paren", "bob)", `\29`},
		{"backslash alone", "bob" + `\`, `\5c`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := UserFilter(tt.login, tt.login)
			if !strings.Contains(filter, tt.escaped) {
				t.Errorf("UserFilter(%q) = %q, missing escape %q", tt.login, filter, tt.escaped)
			}
			// The raw metacharacter must not survive into the filter
			// outside of its escaped form.
			stripped := strings.ReplaceAll(filter, tt.escaped, "")
			inner := stripped[len("(|(sAMAccountName=") : strings.Index(stripped, ")(")]
			if strings.ContainsAny(inner, `*()\`) {
				t.Errorf("UserFilter(%q) left unescaped metacharacter in %q", tt.login, filter)
			}
		})
	}
}

func TestUserFilterInjectionAttempt(t *testing.T) {
	// A crafted login must not be able to widen the equality match.
	filter := UserFilter("*)(objectClass=*", "*)(objectClass=*")
	if strings.Contains(filter, "(objectClass=*)") {
		t.Errorf("filter injection survived escaping: %q", filter)
	}
}
