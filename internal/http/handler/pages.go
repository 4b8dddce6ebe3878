package handler

import (
	"bytes"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"quilthub/internal/config"
	"quilthub/internal/service"
	"quilthub/internal/view"
)

// Home renders the landing page.
func Home(site config.SiteConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, view.Home(site))
	}
}

// SharePage renders the profile card for :slug with a timed redirect to the
// directory, or the not-found page. An unreachable or unreadable directory
// looks exactly like a missing profile.
func SharePage(svc service.ProfileService, site config.SiteConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := pathParam(c, "slug")

		rec, err := svc.Lookup(c.UserContext(), target)
		if err != nil {
			return render(c, view.NotFound(site, target))
		}
		return render(c, view.ProfilePage(*rec, site, target))
	}
}

func render(c *fiber.Ctx, p view.Page) error {
	var buf bytes.Buffer
	if err := view.Render(&buf, p); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(p.Status).Send(buf.Bytes())
}

// pathParam returns the decoded route parameter, falling back to the raw value.
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
