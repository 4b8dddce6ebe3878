package view

import (
	"net/url"
	"strings"

	"quilthub/internal/model"
)

// Links returns the Website, Instagram and Facebook links that are present.
// Each one is independent; a missing or unusable value is simply left out.
func Links(rec model.Record) []Link {
	var links []Link
	if u := safeURL(withScheme(rec.Website)); u != "" {
		links = append(links, Link{Label: "Website", URL: u})
	}
	if u := socialURL(rec.Instagram, "instagram.com"); u != "" {
		links = append(links, Link{Label: "Instagram", URL: u})
	}
	if u := socialURL(rec.Facebook, "facebook.com"); u != "" {
		links = append(links, Link{Label: "Facebook", URL: u})
	}
	return links
}

// socialURL accepts a full URL, a bare host path ("instagram.com/x") or a handle ("@x").
func socialURL(value, host string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return safeURL(v)
	}
	if strings.HasPrefix(lower, host) || strings.HasPrefix(lower, "www."+host) {
		return safeURL("https://" + v)
	}
	handle := strings.TrimPrefix(v, "@")
	if handle == "" || strings.ContainsAny(handle, " /\\?#") {
		return ""
	}
	return "https://" + host + "/" + url.PathEscape(handle)
}

func withScheme(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if strings.Contains(v, "://") {
		return v
	}
	return "https://" + v
}

// safeURL returns v when it is an absolute http(s) URL with a host, else "".
func safeURL(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	u, err := url.Parse(v)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
