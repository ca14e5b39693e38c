// Package email turns a submitted e-mail field into a single normalized address.
package email

import (
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

var (
	ErrEmpty        = errors.New("email: empty input")
	ErrInvalid      = errors.New("email: not a single valid address")
	ErrUnknownTLD   = errors.New("email: top-level domain not recognised")
	ErrBareTLDOnly  = errors.New("email: domain is a bare top-level domain")
	ErrMissingLocal = errors.New("email: missing local part")
)

// Address is a parsed mailbox. Name is the optional display name, Address the
// canonical local@domain form with a lower-cased domain.
type Address struct {
	Name    string
	Address string
	Local   string
	Domain  string
}

// String renders the address back into RFC 5322 form. Normalize(a.String())
// yields a again.
func (a Address) String() string {
	return (&mail.Address{Name: a.Name, Address: a.Address}).String()
}

// Normalize parses raw as exactly one address. Lists, group syntax and domains
// without a recognised top-level domain are rejected.
func Normalize(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}, ErrEmpty
	}

	parsed, err := mail.ParseAddress(raw)
	if err != nil {
		return Address{}, ErrInvalid
	}

	at := strings.LastIndex(parsed.Address, "@")
	if at <= 0 {
		return Address{}, ErrMissingLocal
	}
	local := parsed.Address[:at]
	domain := strings.ToLower(parsed.Address[at+1:])

	if err := checkDomain(domain); err != nil {
		return Address{}, err
	}

	return Address{
		Name:    strings.TrimSpace(parsed.Name),
		Address: local + "@" + domain,
		Local:   local,
		Domain:  domain,
	}, nil
}

// checkDomain validates the punycode form of domain, so internationalized
// top-level domains are looked up under their registered ASCII labels.
func checkDomain(domain string) error {
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return ErrInvalid
	}

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return ErrBareTLDOnly
	}
	for _, l := range labels {
		if l == "" {
			return ErrInvalid
		}
	}

	tld := labels[len(labels)-1]
	if _, icann := publicsuffix.PublicSuffix(tld); !icann {
		return ErrUnknownTLD
	}
	return nil
}
