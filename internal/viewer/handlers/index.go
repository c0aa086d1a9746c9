package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Index Handler
// ============================================================

// Index serves a minimal landing page naming the service surface.
func (h *ViewerHandler) Index(c fiber.Ctx) error {
	page := `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Sticker Viewer</title>
  <style>body{background:#1a1a2e;color:#eee;font-family:monospace;padding:2rem}a{color:#00bcd4}</style>
</head>
<body>
<h1>Sticker Viewer</h1>
<ul>
  <li>POST /render — project JSON to live SVG view</li>
  <li>POST /thumbnail — project JSON to compact preview</li>
  <li>GET /view?data=|id=|project= — inbound load paths</li>
  <li>GET /api/catalog?scope=&amp;q= — remote catalog</li>
  <li>POST /media — local media inspector</li>
</ul>
</body>
</html>`

	c.Type("html")
	return c.SendString(page)
}
