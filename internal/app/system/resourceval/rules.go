package resourceval

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratalibrary/internal/app/system/inputval"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
)

// TitleDisplayLimit is the longest title the admin list renders without
// truncation.
const TitleDisplayLimit = 200

// promoRe matches the promotional wording that must never appear in notes.
var promoRe = regexp.MustCompile(`(?i)\b(?:promo|promoci[oó]n|oferta|descuento|gratis|compra ya|buy now|discount|on sale|free shipping)\b`)

// volumeLimits is the point past which a volume count is suspicious for
// each kind.
var volumeLimits = map[models.ResourceKind]int{
	models.ResourceKindBook:  50,
	models.ResourceKindGame:  1,
	models.ResourceKindMap:   1,
	models.ResourceKindBible: 10,
}

// EvaluateRules runs the general resource rules followed by the rules for
// kind. d should already be normalized.
func EvaluateRules(kind models.ResourceKind, d Draft) ([]entityval.RuleViolation, error) {
	var out []entityval.RuleViolation
	out = append(out, generalRules(d)...)

	switch kind {
	case models.ResourceKindBook:
		out = append(out, bookRules(d)...)
	case models.ResourceKindGame, models.ResourceKindMap:
		out = append(out, singleItemRules(kind, d)...)
	case models.ResourceKindBible:
		out = append(out, bibleRules(d)...)
	default:
		return nil, fmt.Errorf("%w: resource kind %q", entityval.ErrUnsupportedKind, kind)
	}
	return out, nil
}

func generalRules(d Draft) []entityval.RuleViolation {
	var out []entityval.RuleViolation
	if utf8.RuneCountInString(d.Title) > TitleDisplayLimit {
		out = append(out, entityval.Warning(fmt.Sprintf("Title is longer than %d characters and will be truncated in lists.", TitleDisplayLimit)))
	}
	if d.Notes != nil && promoRe.MatchString(notesText(*d.Notes)) {
		out = append(out, entityval.Error("Notes must not contain promotional content."))
	}
	// The schema already caps volumes; this catches drafts that skipped it.
	if d.Volumes > MaxVolumes {
		out = append(out, entityval.Warning(fmt.Sprintf("Volumes exceeds the maximum of %d.", MaxVolumes)))
	}
	return out
}

func bookRules(d Draft) []entityval.RuleViolation {
	var out []entityval.RuleViolation
	if len(d.AuthorIDs) == 0 {
		out = append(out, entityval.Error("Books must have at least one author."))
	}
	if d.ISBN != "" && !inputval.IsValidISBN(d.ISBN) {
		out = append(out, entityval.Error("ISBN check digit is invalid."))
	}
	if d.Volumes > volumeLimits[models.ResourceKindBook] {
		out = append(out, volumeWarning(models.ResourceKindBook))
	}
	return out
}

// singleItemRules covers games and maps.
func singleItemRules(kind models.ResourceKind, d Draft) []entityval.RuleViolation {
	var out []entityval.RuleViolation
	if d.ISBN != "" {
		out = append(out, entityval.Error(fmt.Sprintf("A %s must not carry an ISBN.", kind)))
	}
	if d.Volumes > volumeLimits[kind] {
		out = append(out, volumeWarning(kind))
	}
	return out
}

func bibleRules(d Draft) []entityval.RuleViolation {
	var out []entityval.RuleViolation
	if d.ISBN != "" && !inputval.IsISBNShape(d.ISBN) {
		out = append(out, entityval.Error("ISBN is not a well-formed ISBN-10 or ISBN-13."))
	}
	if d.Volumes > volumeLimits[models.ResourceKindBible] {
		out = append(out, volumeWarning(models.ResourceKindBible))
	}
	return out
}

func volumeWarning(kind models.ResourceKind) entityval.RuleViolation {
	return entityval.Warning(fmt.Sprintf("More than %d volumes is unusual for a %s.", volumeLimits[kind], kind))
}

// notesText is the text a reader sees in notes, so markup cannot split a
// deny-listed phrase.
func notesText(notes string) string {
	if htmlsanitize.IsPlainText(notes) {
		return notes
	}
	return htmlsanitize.StripTags(notes)
}
