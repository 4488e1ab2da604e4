package redirect

import "net/url"

// IsSafe reports whether candidate may be used as a redirect target for a
// request served from origin (an absolute URL such as "http://app.local").
//
// The candidate is resolved relative to origin, so plain paths like
// "/dashboard" are accepted. The resolved target must use http or https and
// its host:port must exactly equal origin's; there is no allowlist and no
// subdomain matching.
func IsSafe(candidate, origin string) bool {
	ref, err := url.Parse(origin)
	if err != nil || ref.Host == "" {
		return false
	}

	target, err := ref.Parse(candidate)
	if err != nil {
		return false
	}

	if target.Scheme != "http" && target.Scheme != "https" {
		return false
	}

	return target.Host == ref.Host
}
