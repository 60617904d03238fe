// Package checkout builds links to the hosted payment page.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotConfigured is returned when no payment link is configured.
var ErrNotConfigured = errors.New("checkout URL is not configured")

// Stripe limits client_reference_id to 200 characters.
const maxReferenceLength = 200

// Params carries the optional values echoed into the payment page.
type Params struct {
	Email     string
	Reference string
}

// Redirector turns a static payment link into a per-visitor checkout URL.
type Redirector struct {
	paymentLink string
	successURL  string
	cancelURL   string
}

func NewRedirector(paymentLink, successURL, cancelURL string) *Redirector {
	return &Redirector{
		paymentLink: strings.TrimSpace(paymentLink),
		successURL:  successURL,
		cancelURL:   cancelURL,
	}
}

// Configured reports whether a payment link is set.
func (r *Redirector) Configured() bool {
	return r != nil && r.paymentLink != ""
}

// URL returns the payment link with prefilled_email and client_reference_id
// set from p. Empty params leave the link unchanged apart from normalization.
func (r *Redirector) URL(p Params) (string, error) {
	if !r.Configured() {
		return "", ErrNotConfigured
	}

	u, err := url.Parse(r.paymentLink)
	if err != nil {
		return "", fmt.Errorf("invalid checkout URL: %w", err)
	}

	q := u.Query()
	if email := strings.TrimSpace(p.Email); email != "" {
		q.Set("prefilled_email", email)
	}
	if ref := sanitizeReference(p.Reference); ref != "" {
		q.Set("client_reference_id", ref)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (r *Redirector) SuccessURL() string { return r.successURL }
func (r *Redirector) CancelURL() string  { return r.cancelURL }

// sanitizeReference keeps only the characters Stripe accepts in a reference id.
func sanitizeReference(ref string) string {
	var b strings.Builder
	for _, ch := range ref {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			b.WriteRune(ch)
		}
		if b.Len() == maxReferenceLength {
			break
		}
	}
	return b.String()
}
