// Package rss renders the most recent posts as an RSS 2.0 feed
package rss

import (
	"encoding/xml"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/pronos-app/pronos/pkg/domain"
)

// Generator creates RSS feeds from posts
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator, links are built from baseURL
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed of posts in the given order
func (g *Generator) GenerateRSS(posts []domain.Post) (string, error) {
	items := make([]*Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, g.convertToItem(p))
	}

	feed := &Feed{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &Channel{
			Title:         "Pronos - latest predictions",
			Link:          g.baseURL + "/",
			Description:   "Most recent sports predictions shared by the community",
			AtomLink:      &AtomLink{Href: g.baseURL + "/api/v1/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

func (g *Generator) convertToItem(p domain.Post) *Item {
	item := &Item{
		Title:       fmt.Sprintf("@%s [odds %.2f, confidence %d%%]", p.User.Username, p.Odds, p.Confidence),
		Link:        g.baseURL + "/api/v1/posts/" + p.ID,
		GUID:        GUID{Value: p.ID},
		Description: p.Content,
		PubDate:     p.CreatedAt.Format(time.RFC1123Z),
	}
	if p.ImageURL != "" {
		item.Enclosure = &Enclosure{URL: p.ImageURL, Type: imageType(p.ImageURL)}
	}
	return item
}

// imageType guesses the media type from the image extension
func imageType(imageURL string) string {
	if i := strings.IndexAny(imageURL, "?#"); i >= 0 {
		imageURL = imageURL[:i]
	}
	if t := mime.TypeByExtension(path.Ext(imageURL)); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
