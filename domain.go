package staffdir

import (
	"net/url"
	"strings"
)

// ResolveDomainKey derives the selector configuration key from a page URL:
// the second-to-last label of the hostname.
//
//	https://staff.mansfieldisd.org/directory -> mansfieldisd
//
// Hosts under multi-label public suffixes resolve to the suffix label
// (example.co.uk -> co). Single-label hosts resolve to "".
func ResolveDomainKey(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q", rawURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL %q", rawURL)
	}

	labels := strings.Split(strings.ToLower(u.Hostname()), ".")
	if len(labels) < 2 {
		return "", nil
	}
	return labels[len(labels)-2], nil
}
