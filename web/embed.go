// Package web embeds the site's templates and static assets into the
// binary so a single executable carries the whole UI.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var assets embed.FS

// StaticFS returns the embedded stylesheet and asset tree, rooted at
// static/.
func StaticFS() fs.FS {
	return mustSub("static")
}

// TemplatesFS returns the embedded page templates, rooted at templates/.
func TemplatesFS() fs.FS {
	return mustSub("templates")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		log.Fatalf("embedded %s tree missing: %v", dir, err)
	}
	return sub
}
