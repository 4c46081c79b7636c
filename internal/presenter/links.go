package presenter

import (
	"net/url"
	"strings"

	"github.com/benknight/cocolist/internal/i18n"
)

// Link kinds double as message keys.
const (
	KindFacebook  = "Facebook_link"
	KindMessenger = "Messenger_link"
	KindVNMM      = "VNMM_link"
)

// Icons for each link kind.
const (
	IconFacebook  = "icons/social-facebook-small.svg"
	IconMessenger = "icons/messenger-logo.svg"
	IconVNMM      = "icons/vnmm-logo.svg"
)

// Link is an external link of a business.
type Link struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// firstSegment returns the first comma separated value of raw, trimmed.
func firstSegment(raw string) string {
	return strings.TrimSpace(strings.Split(raw, ",")[0])
}

// messengerURL points a Facebook page link at the Messenger app.
func messengerURL(facebook string) string {
	if u, err := url.Parse(facebook); err == nil && u.Host != "" {
		if hostMatches(u.Hostname(), "facebook.com") {
			u.Host = "m.me"
			return u.String()
		}
	}
	return strings.Replace(facebook, "facebook.com", "m.me", 1)
}

func buildLinks(facebookRaw, vnmmRaw, lang string, platform *i18n.Resolver) []Link {
	links := make([]Link, 0, 3)
	if fb := firstSegment(facebookRaw); fb != "" {
		links = append(links,
			Link{Kind: KindFacebook, URL: fb, Icon: IconFacebook},
			Link{Kind: KindMessenger, URL: messengerURL(fb), Icon: IconMessenger},
		)
	}
	if vnmm := firstSegment(vnmmRaw); vnmm != "" {
		if platform != nil {
			vnmm = platform.LocalizeURL(vnmm, lang)
		}
		links = append(links, Link{Kind: KindVNMM, URL: vnmm, Icon: IconVNMM})
	}
	return links
}
