// Package icons maps issuer labels to icon slugs. Icons are stored remotely
// as <slug>.png; DefaultSlug is always present.
package icons

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/otpkeeper/internal/common"
)

const DefaultSlug = common.DefaultIconSlug

type rule struct {
	key  string
	slug string
}

// Checked in order; the first key contained in the issuer wins. Keys shorter
// than three letters must match the whole issuer so that "x" does not claim
// every issuer containing that letter.
var rules = []rule{
	{"google", "google"},
	{"gmail", "google"},
	{"github", "github"},
	{"meta", "meta"},
	{"facebook", "meta"},
	{"instagram", "instagram"},
	{"twitter", "twitter"},
	{"x", "twitter"},
	{"discord", "discord"},
	{"amazon", "amazon"},
	{"microsoft", "microsoft"},
	{"apple", "apple"},
	{"supabase", "supabase"},
	{"stripe", "stripe"},
	{"netflix", "netflix"},
	{"linkedin", "linkedin"},
	{"slack", "slack"},
	{"notion", "notion"},
	{"figma", "figma"},
	{"dropbox", "dropbox"},
	{"twitch", "twitch"},
	{"spotify", "spotify"},
	{"paypal", "paypal"},
	{"cloudflare", "cloudflare"},
}

// GuessSlug picks an icon for issuer, falling back to DefaultSlug.
func GuessSlug(issuer string) string {
	k := strings.ToLower(strings.TrimSpace(issuer))
	if k == "" {
		return DefaultSlug
	}
	for _, r := range rules {
		if len(r.key) < 3 {
			if k == r.key {
				return r.slug
			}
			continue
		}
		if strings.Contains(k, r.key) {
			return r.slug
		}
	}
	return DefaultSlug
}

// Slugs lists DefaultSlug followed by every known slug in alphabetical order.
func Slugs() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range rules {
		if _, ok := seen[r.slug]; ok {
			continue
		}
		seen[r.slug] = struct{}{}
		out = append(out, r.slug)
	}
	sort.Strings(out)
	return append([]string{DefaultSlug}, out...)
}

// Known reports whether slug names a stored icon.
func Known(slug string) bool {
	if slug == DefaultSlug {
		return true
	}
	for _, r := range rules {
		if r.slug == slug {
			return true
		}
	}
	return false
}

// ObjectKey is the storage key of the icon for slug.
func ObjectKey(slug string) string {
	if !Known(slug) {
		slug = DefaultSlug
	}
	return "icons/" + slug + ".png"
}
