// Package validation contains acceptance rules for user-submitted text.
package validation

import "strings"

// MinTextLength is the minimum accepted length for any submitted text field.
const MinTextLength = 10

// blacklist is process-wide static rule data, never mutated at runtime.
// Matching is case-insensitive substring containment.
var blacklist = []string{
	"fuck",
	"bitch",
	"whore",
	"asshole",
	"shit",
	"bastard",
	"cunt",
	"dick",
	"pussy",
	"cock",
	"retard",
	"slut",
	"wanker",
	"jerk",
	"prick",
	"twat",
	"douche",
	"douchebag",
	"moron",
	"idiot",
	"dumbass",
	"dipshit",
	"motherfucker",
	"sonofabitch",
	"bullshit",
	"crap",
	"arse",
	"bollocks",
	"frick",
	"tits",
	"boobs",
}

// IsValidText reports whether user-submitted text is acceptable: at least
// MinTextLength characters and free of blacklisted terms. Callers check this
// before persisting the owning entity; failing text must never reach a write.
func IsValidText(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range blacklist {
		if strings.Contains(lowered, word) {
			return false
		}
	}
	return len(text) >= MinTextLength
}
