package directory

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// LDAPConfig holds LDAP/Active Directory configuration of the directory.
type LDAPConfig struct {
	// Enabled indicates if the LDAP directory is enabled.
	Enabled bool
	// Host is the LDAP server hostname or IP address.
	Host string
	// Port is the LDAP server port (typically 389 for LDAP, 636 for LDAPS).
	Port int
	// UseSSL enables LDAPS (LDAP over SSL/TLS).
	UseSSL bool
	// UseTLS enables StartTLS to upgrade an LDAP connection to TLS.
	UseTLS bool
	// SkipVerify skips TLS certificate verification (insecure, for testing only).
	SkipVerify bool
	// BindDN is the distinguished name to bind with for performing searches.
	BindDN string
	// BindPassword is the password for the bind DN.
	BindPassword string
	// BaseDN is the base distinguished name for user searches.
	BaseDN string
	// UserFilter is the LDAP filter for finding users (e.g., "(uid={username})").
	// The {username} placeholder is replaced with the escaped login id.
	UserFilter string
	// SubjectAttr holds the stable user id reported as subject (e.g., "uidNumber", "objectGUID").
	SubjectAttr string
	// UsernameAttr is the LDAP attribute containing the login id (e.g., "uid", "sAMAccountName").
	UsernameAttr string
	NameAttr     string
	EmailAttr    string
	PhoneAttr    string
	CountryAttr  string
	StreetAttr   string
	LocalityAttr string
	RegionAttr   string
	PostalAttr   string
	// Timeout is the connection timeout in seconds.
	Timeout int
}

// LDAP is a directory that binds as the user against an LDAP server.
type LDAP struct {
	config LDAPConfig
}

var _ UserDirectory = (*LDAP)(nil)

// NewLDAP creates an LDAP directory.
func NewLDAP(config LDAPConfig) (*LDAP, error) {
	if !config.Enabled {
		return nil, ErrLDAPDisabled
	}

	// Set defaults
	if config.UsernameAttr == "" {
		config.UsernameAttr = "uid"
	}

	if config.SubjectAttr == "" {
		config.SubjectAttr = "uidNumber"
	}

	if config.UserFilter == "" {
		config.UserFilter = "(" + config.UsernameAttr + "={username})"
	}

	if config.NameAttr == "" {
		config.NameAttr = "cn"
	}

	if config.EmailAttr == "" {
		config.EmailAttr = "mail"
	}

	if config.PhoneAttr == "" {
		config.PhoneAttr = "telephoneNumber"
	}

	if config.CountryAttr == "" {
		config.CountryAttr = "c"
	}

	if config.StreetAttr == "" {
		config.StreetAttr = "street"
	}

	if config.LocalityAttr == "" {
		config.LocalityAttr = "l"
	}

	if config.RegionAttr == "" {
		config.RegionAttr = "st"
	}

	if config.PostalAttr == "" {
		config.PostalAttr = "postalCode"
	}

	if config.Timeout == 0 {
		config.Timeout = 10
	}

	return &LDAP{config: config}, nil
}

// Connect establishes a connection to the LDAP server.
func (p *LDAP) Connect() (*ldap.Conn, error) {
	hostPort := net.JoinHostPort(p.config.Host, strconv.Itoa(p.config.Port))

	ldapURL := "ldap://" + hostPort
	if p.config.UseSSL {
		ldapURL = "ldaps://" + hostPort
	}

	var tlsConfig *tls.Config
	if p.config.UseSSL || p.config.UseTLS {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: p.config.SkipVerify, //nolint:gosec // skipping verifying tls is ok
			ServerName:         p.config.Host,
		}
	}

	timeout := time.Duration(p.config.Timeout) * time.Second

	conn, err := ldap.DialURL(ldapURL,
		ldap.DialWithTLSConfig(tlsConfig),
		ldap.DialWithDialer(&net.Dialer{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}

	if !p.config.UseSSL && p.config.UseTLS {
		if errStartTLS := conn.StartTLS(tlsConfig); errStartTLS != nil {
			if errClose := conn.Close(); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close LDAP connection")
			}

			return nil, fmt.Errorf("failed to start TLS: %w", errStartTLS)
		}
	}

	conn.SetTimeout(timeout)

	return conn, nil
}

// FindByCredentials implements UserDirectory.
func (p *LDAP) FindByCredentials(_ context.Context, loginID, password string) (*identity.User, error) {
	// an empty password would be an unauthenticated bind that always succeeds
	if loginID == "" || password == "" {
		return nil, ErrUserNotFound
	}

	conn, err := p.Connect()
	if err != nil {
		return nil, err
	}

	defer func() {
		if errClose := conn.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close LDAP connection")
		}
	}()

	if p.config.BindDN != "" {
		if err := conn.Bind(p.config.BindDN, p.config.BindPassword); err != nil {
			return nil, fmt.Errorf("failed to bind with service account: %w", err)
		}
	}

	entry, err := p.searchUserEntry(conn, loginID)
	if err != nil {
		return nil, err
	}

	if err := conn.Bind(entry.DN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	user := p.toUser(entry)
	if user.LoginID != loginID || user.Subject == "" {
		log.Warn().Str("dn", entry.DN).Msg("ldap entry without matching login id or subject")

		return nil, ErrUserNotFound
	}

	return user, nil
}

// searchUserEntry searches LDAP for the given login id and returns a single entry.
func (p *LDAP) searchUserEntry(conn *ldap.Conn, loginID string) (*ldap.Entry, error) {
	userFilter := strings.ReplaceAll(p.config.UserFilter, "{username}", ldap.EscapeFilter(loginID))
	searchRequest := ldap.NewSearchRequest(
		p.config.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, // Size limit
		p.config.Timeout,
		false,
		userFilter,
		p.attributes(),
		nil,
	)

	searchResult, err := conn.Search(searchRequest)
	if err != nil {
		var ldapErr *ldap.Error
		if errors.As(err, &ldapErr) && ldapErr.ResultCode == ldap.LDAPResultNoSuchObject {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to search for user: %w", err)
	}

	switch len(searchResult.Entries) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return searchResult.Entries[0], nil
	default:
		return nil, ErrMultipleUsersFound
	}
}

func (p *LDAP) attributes() []string {
	return []string{
		p.config.SubjectAttr,
		p.config.UsernameAttr,
		p.config.NameAttr,
		p.config.EmailAttr,
		p.config.PhoneAttr,
		p.config.CountryAttr,
		p.config.StreetAttr,
		p.config.LocalityAttr,
		p.config.RegionAttr,
		p.config.PostalAttr,
	}
}

func (p *LDAP) toUser(entry *ldap.Entry) *identity.User {
	user := &identity.User{
		Subject:     entry.GetAttributeValue(p.config.SubjectAttr),
		LoginID:     entry.GetAttributeValue(p.config.UsernameAttr),
		Name:        entry.GetAttributeValue(p.config.NameAttr),
		Email:       entry.GetAttributeValue(p.config.EmailAttr),
		PhoneNumber: entry.GetAttributeValue(p.config.PhoneAttr),
	}

	addr := identity.Address{
		Country:       entry.GetAttributeValue(p.config.CountryAttr),
		StreetAddress: entry.GetAttributeValue(p.config.StreetAttr),
		Locality:      entry.GetAttributeValue(p.config.LocalityAttr),
		Region:        entry.GetAttributeValue(p.config.RegionAttr),
		PostalCode:    entry.GetAttributeValue(p.config.PostalAttr),
	}

	if addr != (identity.Address{}) {
		user.Address = &addr
	}

	return user
}

// TestConnection checks that the server is reachable and the service account can bind.
func (p *LDAP) TestConnection() error {
	conn, err := p.Connect()
	if err != nil {
		return err
	}

	defer func() {
		if errClose := conn.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close LDAP connection")
		}
	}()

	if p.config.BindDN != "" {
		if err := conn.Bind(p.config.BindDN, p.config.BindPassword); err != nil {
			return fmt.Errorf("bind failed: %w", err)
		}
	}

	return nil
}
