package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/meetp/facultyfinder/internal/app/models"
)

// sentinels are the literal "missing value" markers the scraper emits.
// Past this package they become nil pointers, never strings.
var sentinels = map[string]bool{
	"":    true,
	"N/A": true,
	"nan": true,
}

// mojibakeReplacer fixes the UTF-8-as-Latin-1 artifacts the university site
// serves in education and interest fields.
var mojibakeReplacer = strings.NewReplacer(
	"â€“", "-",
	"â€™", "'",
)

// Normalizer turns raw scraped rows into canonical faculty records.
type Normalizer struct {
	// phonePrefix is the local area-code substring a phone number must
	// contain to be kept (e.g. "079-").
	phonePrefix string
}

// NewNormalizer creates a normalizer with the given phone area-code prefix.
func NewNormalizer(phonePrefix string) *Normalizer {
	return &Normalizer{phonePrefix: phonePrefix}
}

// Normalize cleans one raw record into canonical shape, stamping it with now.
// A malformed field degrades to absent; the only unrecoverable condition is a
// missing name, since name is the fallback identity key.
func (n *Normalizer) Normalize(raw RawRecord, now time.Time) (*models.FacultyMember, error) {
	name := collapseWhitespace(raw.Name)
	if name == "" || sentinels[name] {
		return nil, fmt.Errorf("record has no name")
	}

	return &models.FacultyMember{
		Name:        name,
		Designation: valueOrEmpty(cleanText(raw.Designation)),
		Email:       cleanEmail(raw.Email),
		Phone:       n.cleanPhone(raw.Phone),
		Education:   cleanText(raw.Education),
		BioInterest: cleanText(raw.AreaOfInterest),
		ProfileLink: cleanURL(raw.ProfileLink),
		ImageURL:    cleanURL(raw.ImageURL),
		LastUpdated: now.Format(models.TimestampLayout),
	}, nil
}

// cleanPhone keeps a number only if it carries the local area-code prefix,
// then strips everything except digits and hyphens.
func (n *Normalizer) cleanPhone(phone string) *string {
	phone = strings.TrimSpace(phone)
	if sentinels[phone] || !strings.Contains(phone, n.phonePrefix) {
		return nil
	}

	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// cleanEmail resolves sentinels and de-obfuscates "[at]"/"[dot]" notation.
// No syntax validation happens here; the source is trusted to publish
// addresses, not to format them.
func cleanEmail(email string) *string {
	email = collapseWhitespace(email)
	if sentinels[email] || strings.Contains(email, "N/A") {
		return nil
	}

	email = strings.ReplaceAll(email, "[at]", "@")
	email = strings.ReplaceAll(email, "[dot]", ".")
	return &email
}

// cleanText resolves sentinels and repairs known mis-encoded byte sequences.
func cleanText(text string) *string {
	text = strings.TrimSpace(text)
	if sentinels[text] {
		return nil
	}

	text = mojibakeReplacer.Replace(text)
	return &text
}

// cleanURL resolves sentinels; anything else passes through untouched.
func cleanURL(u string) *string {
	u = strings.TrimSpace(u)
	if sentinels[u] {
		return nil
	}
	return &u
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
