// Package search provides the article collectors. A Provider answers
// one keyword query with a bounded, normalized result list; picking
// which provider runs is a deployment decision made in config.
package search

import (
	"context"

	"github.com/juyoungkim-kream/scrap/internal/article"
)

type Provider interface {
	// Search issues one query for the keyword and returns normalized
	// articles in the provider's own order.
	Search(ctx context.Context, keyword string) ([]article.Article, error)
	Name() string
}
