package presenter

import (
	"errors"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

const trackingPrefix = "utm_"

// Phone is a formatted phone number.
type Phone struct {
	Display string `json:"display"`
	Href    string `json:"href"`
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func hostMatches(host, domain string) bool {
	host = strings.ToLower(strings.Trim(strings.TrimSpace(host), "."))
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// websiteURL returns the website with tracking parameters removed.
func websiteURL(raw string) string {
	u, err := sanitizeURL(raw)
	if err != nil {
		return ""
	}
	stripTracking(u)
	return u.String()
}

// displayWebsite renders a website for reading: no scheme, no www., no
// trailing slash, Unicode host.
func displayWebsite(raw string) string {
	u, err := sanitizeURL(raw)
	if err != nil {
		return ""
	}
	stripTracking(u)
	host := strings.ToLower(u.Hostname())
	if unicodeHost, err := idna.Display.ToUnicode(host); err == nil {
		host = unicodeHost
	}
	host = strings.TrimPrefix(host, "www.")
	out := host + strings.TrimRight(u.EscapedPath(), "/")
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}

func normalizePhone(raw, region string) *Phone {
	raw = strings.TrimSpace(strings.Split(raw, ",")[0])
	if raw == "" {
		return nil
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return nil
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return nil
	}
	return &Phone{
		Display: phonenumbers.Format(number, phonenumbers.INTERNATIONAL),
		Href:    "tel:" + phonenumbers.Format(number, phonenumbers.E164),
	}
}
