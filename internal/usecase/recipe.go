package usecase

import (
	"net/url"
	"strings"
)

// recipeSearchBase is the external recipe-search site all lookups point at
const recipeSearchBase = "https://cookpad.com/search/"

// BuildRecipeURL builds a recipe-search URL for the given keywords.
// The input is trimmed and percent-encoded as a single path segment; for a
// multi-item lookup the caller joins item names with single spaces first.
func BuildRecipeURL(keywords string) string {
	return recipeSearchBase + url.PathEscape(strings.TrimSpace(keywords))
}

// BuildRecipeURLForItems joins item names with spaces and builds one
// combined recipe-search URL for all of them.
func BuildRecipeURLForItems(names []string) string {
	return BuildRecipeURL(strings.Join(names, " "))
}
