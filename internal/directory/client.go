package directory

import (
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"
)

// Options configures the LDAP client.
type Options struct {
	URL          string
	BindDN       string
	BindPassword string
	SearchBase   string
	Timeout      time.Duration
	SkipVerify   bool
}

// Client talks to the directory service over LDAP. Every call dials a
// fresh connection and closes it before returning.
type Client struct {
	opts   Options
	logger *zap.Logger
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	return &Client{opts: opts, logger: logger}
}

func (c *Client) dial() (*ldap.Conn, error) {
	conn, err := ldap.DialURL(c.opts.URL,
		ldap.DialWithDialer(&net.Dialer{Timeout: c.opts.Timeout}),
		ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: c.opts.SkipVerify}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	conn.SetTimeout(c.opts.Timeout)
	return conn, nil
}

// ResolveDN authenticates the service account, searches for an entry
// matching the login, and returns its distinguished name.
func (c *Client) ResolveDN(normalizedLogin, rawLogin string) (string, error) {
	conn, err := c.dial()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := conn.Bind(c.opts.BindDN, c.opts.BindPassword); err != nil {
		c.logger.Error("Directory service bind failed", zap.Error(err))
		return "", fmt.Errorf("%w: service bind: %v", ErrUnavailable, err)
	}

	req := ldap.NewSearchRequest(
		c.opts.SearchBase,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		2, // at most two results, first match wins
		int(c.opts.Timeout.Seconds()),
		false,
		UserFilter(normalizedLogin, rawLogin),
		[]string{"dn", "cn", "mail", "sAMAccountName"},
		nil,
	)

	result, err := conn.Search(req)
	if err != nil && !ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) {
		c.logger.Error("Directory search failed", zap.String("login", normalizedLogin), zap.Error(err))
		return "", fmt.Errorf("%w: search: %v", ErrUnavailable, err)
	}
	if result == nil || len(result.Entries) == 0 {
		return "", ErrNotFound
	}
	return result.Entries[0].DN, nil
}

// BindUser verifies the password by binding directly as the resolved
// distinguished name on a fresh connection.
func (c *Client) BindUser(dn, password string) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Bind(dn, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return ErrInvalidCredentials
		}
		c.logger.Warn("Directory user bind failed", zap.String("dn", dn), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrBindFailed, err)
	}
	return nil
}
