// Package view builds and renders the HTML pages.
//
// Pages are plain data: metadata, body content and an optional redirect
// instruction. Render decides how the redirect is carried out in the browser.
package view

import (
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quilthub/internal/config"
	"quilthub/internal/model"
)

// Kind selects the page body.
type Kind int

const (
	KindHome Kind = iota
	KindProfile
	KindNotFound
)

// Meta is the document head metadata.
type Meta struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGURL         string
	OGType        string
	TwitterCard   string
}

// Redirect asks the client to navigate to URL once After has elapsed.
type Redirect struct {
	URL   string
	After time.Duration
}

// Millis is the delay in whole milliseconds.
func (r Redirect) Millis() int64 { return r.After.Milliseconds() }

// Seconds is the delay rounded up to whole seconds, for meta refresh.
func (r Redirect) Seconds() int64 { return int64(math.Ceil(r.After.Seconds())) }

// Link is an outbound profile link.
type Link struct {
	Label string
	URL   string
}

// Profile is the card content for one record.
type Profile struct {
	Name     string
	Initial  string
	Category string
	Location string
	Bio      string
	PhotoURL string
	Links    []Link
}

// Page is everything needed to render one response.
type Page struct {
	Kind     Kind
	Status   int
	Lang     string
	SiteName string
	Tagline  string
	// DirectoryURL is the outbound "Browse Directory" target.
	DirectoryURL string
	Meta         Meta
	Profile      *Profile
	Redirect     *Redirect
	// Slug is the requested slug on not-found pages.
	Slug string
}

// Home builds the landing page.
func Home(site config.SiteConfig) Page {
	return Page{
		Kind:         KindHome,
		Status:       http.StatusOK,
		Lang:         "en",
		SiteName:     site.Name,
		Tagline:      site.Tagline,
		DirectoryURL: site.DirectoryURL,
		Meta: Meta{
			Title:         site.Name,
			Description:   site.Description,
			OGTitle:       site.Name,
			OGDescription: site.Description,
			OGURL:         pageURL(site.BaseURL, "/"),
			OGType:        "website",
			TwitterCard:   "summary",
		},
	}
}

// ProfilePage builds the share page for rec, redirecting to the directory entry.
func ProfilePage(rec model.Record, site config.SiteConfig, slug string) Page {
	title := rec.Name + " | " + site.Name
	description := rec.Bio
	if description == "" {
		description = "Check out " + rec.Name + " on " + site.Name
	}
	photo := safeURL(rec.PhotoURL)

	card := "summary"
	if photo != "" {
		card = "summary_large_image"
	}

	return Page{
		Kind:         KindProfile,
		Status:       http.StatusOK,
		Lang:         "en",
		SiteName:     site.Name,
		DirectoryURL: site.DirectoryURL,
		Meta: Meta{
			Title:         title,
			Description:   description,
			OGTitle:       title,
			OGDescription: description,
			OGImage:       photo,
			OGURL:         pageURL(site.BaseURL, "/share/"+url.PathEscape(slug)),
			OGType:        "profile",
			TwitterCard:   card,
		},
		Profile: &Profile{
			Name:     rec.Name,
			Initial:  initial(rec.Name),
			Category: rec.Category,
			Location: rec.Location,
			Bio:      rec.Bio,
			PhotoURL: photo,
			Links:    Links(rec),
		},
		Redirect: &Redirect{
			URL:   RedirectURL(site, rec.Name),
			After: site.RedirectDelay,
		},
	}
}

// NotFound builds the page shown when no profile can be displayed.
// It never carries a redirect.
func NotFound(site config.SiteConfig, slug string) Page {
	title := "Profile not found | " + site.Name
	return Page{
		Kind:         KindNotFound,
		Status:       http.StatusNotFound,
		Lang:         "en",
		SiteName:     site.Name,
		DirectoryURL: site.DirectoryURL,
		Slug:         slug,
		Meta: Meta{
			Title:         title,
			Description:   site.Description,
			OGTitle:       title,
			OGDescription: site.Description,
			OGType:        "website",
			TwitterCard:   "summary",
		},
	}
}

// RedirectURL is the directory URL with the business name as a query parameter.
// Existing query parameters on the directory URL are kept.
func RedirectURL(site config.SiteConfig, name string) string {
	u, err := url.Parse(site.DirectoryURL)
	if err != nil {
		return site.DirectoryURL
	}
	param := site.RedirectParam
	if param == "" {
		param = "business"
	}
	q := u.Query()
	q.Set(param, name)
	u.RawQuery = q.Encode()
	return u.String()
}

func pageURL(base, path string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + path
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}
