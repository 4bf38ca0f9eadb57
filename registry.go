package spartandoc

import (
	"regexp"
	"strings"
)

// DefaultBaseURL is the documentation site all page URLs are built from.
const DefaultBaseURL = "https://www.spartan.ng"

// components is the known component set of the library, in the order the
// site lists them. Warming iterates this list; on-demand lookups are not
// restricted to it so that newly published components still resolve.
var components = []string{
	"accordion", "alert", "alert-dialog", "aspect-ratio", "avatar",
	"badge", "breadcrumb", "button", "calendar", "card", "carousel",
	"checkbox", "collapsible", "combobox", "command", "context-menu",
	"data-table", "date-picker", "dialog", "dropdown-menu", "form-field",
	"hover-card", "icon", "input", "input-otp", "label", "menubar",
	"pagination", "popover", "progress", "radio-group", "scroll-area",
	"select", "separator", "sheet", "skeleton", "slider", "sonner",
	"spinner", "switch", "table", "tabs", "textarea", "toggle",
	"toggle-group", "tooltip", "typography",
}

// docTopics is the known set of non-component documentation pages.
var docTopics = []string{
	"introduction", "installation", "cli", "theming", "dark-mode",
	"typography", "figma", "update-guide", "about",
}

// Components returns the known component slugs.
func Components() []string {
	out := make([]string, len(components))
	copy(out, components)
	return out
}

// DocTopics returns the known documentation topic slugs.
func DocTopics() []string {
	out := make([]string, len(docTopics))
	copy(out, docTopics)
	return out
}

// ComponentURL returns the documentation page URL for a component slug.
func ComponentURL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/components/" + NormalizeKey(name)
}

// DocURL returns the documentation page URL for a topic slug.
func DocURL(baseURL, topic string) string {
	return strings.TrimSuffix(baseURL, "/") + "/documentation/" + NormalizeKey(topic)
}

var keyCleanRe = regexp.MustCompile(`[^a-z0-9-_]+`)

// NormalizeKey lowercases a component or topic name and strips characters
// that are unsafe in cache filenames and URL paths.
func NormalizeKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "-")
	return keyCleanRe.ReplaceAllString(key, "")
}
