// Package docs holds the component catalog shown by the browser and the
// CLI.
//
// The catalog is YAML compiled into the binary. Each entry carries page
// content for the base and radix registries, an API table, accessibility
// notes and the live examples the browser builds previews from. Only
// entries with status Available are published; the rest are listed as
// upcoming.
//
// Resolve applies the page routing rules:
//
//	doc, err := catalog.Resolve("Tabs")       // case-insensitive
//	doc, err = catalog.Resolve("components")  // first published doc
//	_, err = catalog.Resolve("popover")       // errors.ErrDocNotFound
package docs
