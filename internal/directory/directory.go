package directory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

var (
	// ErrNotFound means no directory entry matched the login.
	ErrNotFound = errors.New("directory: user not found")
	// ErrInvalidCredentials means the user bind was refused for a bad
	// password (LDAP result code 49).
	ErrInvalidCredentials = errors.New("directory: invalid credentials")
	// ErrBindFailed covers user-bind failures other than bad credentials.
	ErrBindFailed = errors.New("directory: bind failed")
	// ErrUnavailable means the directory could not be reached or the
	// service account could not authenticate.
	ErrUnavailable = errors.New("directory: unavailable")
)

// Directory resolves a login to a distinguished name and verifies a
// password against it. Implementations open transient connections per
// call; there is no pooling.
type Directory interface {
	ResolveDN(normalizedLogin, rawLogin string) (string, error)
	BindUser(dn, password string) error
}

// NormalizeLogin reduces DOMAIN\user and user@domain forms to the bare
// lower-cased account name used as the credential store lookup key.
func NormalizeLogin(login string) string {
	login = strings.TrimSpace(login)
	if i := strings.LastIndex(login, `\`); i >= 0 {
		login = login[i+1:]
	}
	if i := strings.Index(login, "@"); i >= 0 {
		login = login[:i]
	}
	return strings.ToLower(login)
}

// UserFilter builds the search filter matching either the indexed
// account-name attribute or the principal name. Both inputs are escaped
// so characters like * ( ) \ cannot widen the match.
func UserFilter(normalizedLogin, rawLogin string) string {
	return fmt.Sprintf("(|(sAMAccountName=%s)(userPrincipalName=%s))",
		ldap.EscapeFilter(normalizedLogin), ldap.EscapeFilter(rawLogin))
}
