// Package sanitize validates and normalizes untrusted score submissions.
// All functions are pure: no state, no I/O.
package sanitize

import (
	"math"
	"regexp"
	"strings"

	goaway "github.com/TwiN/go-away"
)

// MaxNameLength bounds a display name after normalization.
const MaxNameLength = 32

// MaxScore caps accepted scores so the float to int conversion can never
// overflow into a negative value.
const MaxScore = math.MaxInt32

// gamePattern keeps collection keys stable and safe for use as sheet names.
var gamePattern = regexp.MustCompile(`^[a-z0-9-]{1,40}$`)

var controlToSpace = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)

var spaces = regexp.MustCompile(`\s+`)

// leet folds the common leetspeak substitutions before the profanity check.
var leet = strings.NewReplacer("0", "o", "1", "i", "3", "e", "4", "a", "5", "s", "7", "t")

// profanity is configured without the library's own leetspeak/special-char
// folding; Name normalizes the candidate itself so the two passes don't
// double-substitute.
var profanity = goaway.NewProfanityDetector().
	WithSanitizeLeetSpeak(false).
	WithSanitizeSpecialCharacters(false).
	WithSanitizeAccents(false)

// Game lower-cases and trims a collection key. Keys are limited to
// lowercase letters, digits and hyphens, at most 40 characters.
func Game(raw string) (string, error) {
	g := strings.ToLower(strings.TrimSpace(raw))
	if !gamePattern.MatchString(g) {
		return "", ErrInvalidGame
	}
	return g, nil
}

// Name normalizes a display name and rejects anything that looks like spam,
// contact info or profanity. The returned name is display-ready; storage
// escaping for spreadsheet formulas is owned by the workbook codec.
func Name(raw string) (string, error) {
	clean := strings.TrimSpace(controlToSpace.Replace(raw))
	if r := []rune(clean); len(r) > MaxNameLength {
		clean = string(r[:MaxNameLength])
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", ErrInvalidName
	}
	if looksLikeLinkOrEmail(clean) {
		return "", ErrInvalidName
	}
	normalized := normalizeForProfanity(clean)
	if normalized == "" {
		return "", ErrInvalidName
	}
	if profanity.IsProfane(normalized) {
		return "", ErrInvalidName
	}
	return clean, nil
}

// Score coerces a caller-supplied number to a non-negative integer score.
// Negative values clamp to 0, values beyond MaxScore clamp to it, and
// fractional values are floored.
func Score(raw float64) (int, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, ErrInvalidScore
	}
	if raw < 0 {
		return 0, nil
	}
	if raw > MaxScore {
		return MaxScore, nil
	}
	return int(math.Floor(raw)), nil
}

func looksLikeLinkOrEmail(s string) bool {
	t := strings.ToLower(s)
	if strings.Contains(t, "http://") || strings.Contains(t, "https://") || strings.Contains(t, "www.") {
		return true
	}
	return strings.Contains(t, "@")
}

// normalizeForProfanity folds leetspeak and strips non-letters/digits to
// reduce obvious filter bypasses.
func normalizeForProfanity(s string) string {
	t := leet.Replace(strings.ToLower(s))
	t = nonAlnum.ReplaceAllString(t, " ")
	t = spaces.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
