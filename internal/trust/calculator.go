// Package trust computes the 0-100 employer trust score. Every function here
// is deterministic and side-effect free; persistence of the resulting score is
// the verification service's job.
package trust

import (
	"strings"
	"time"
)

// Score bounds and event constants.
const (
	MinScore = 0
	MaxScore = 100

	ScoreNoWebsite      = 40 // email confirmed, nothing to match against
	ScoreGenericDomain  = 40 // consumer mail provider
	ScoreDomainMismatch = 45 // both domains present but different
	ScoreDomainMatch    = 60 // email domain equals website domain
	ScoreDocumentBonus  = 15 // added per accepted document submission
	ScoreAdminApproved  = 85
	ScoreSuspended      = 0
)

// genericProviders is the denylist of consumer email domains that never count
// as a company match.
var genericProviders = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"mail.com":       true,
	"protonmail.com": true,
	"icloud.com":     true,
	"aol.com":        true,
	"zoho.com":       true,
	"yandex.com":     true,
	"gmx.com":        true,
}

// DomainOutcome classifies the work-email vs. company-website comparison.
type DomainOutcome string

const (
	OutcomeNoWebsite DomainOutcome = "no_website"
	OutcomeGeneric   DomainOutcome = "generic_provider"
	OutcomeMismatch  DomainOutcome = "mismatch"
	OutcomeMatch     DomainOutcome = "match"
)

// BaseDomain reduces a host name to its last two labels
// ("careers.acme.com" -> "acme.com").
func BaseDomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

// EmailDomain extracts the domain part of an address.
func EmailDomain(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

// WebsiteDomain strips scheme, www prefix and path from a website URL.
func WebsiteDomain(website string) string {
	site := strings.ToLower(strings.TrimSpace(website))
	site = strings.TrimPrefix(site, "https://")
	site = strings.TrimPrefix(site, "http://")
	site = strings.TrimPrefix(site, "www.")
	if i := strings.IndexByte(site, '/'); i >= 0 {
		site = site[:i]
	}
	return site
}

// CompareDomains classifies the work email against the company website.
func CompareDomains(workEmail, website string) DomainOutcome {
	emailBase := BaseDomain(EmailDomain(workEmail))
	if genericProviders[emailBase] {
		return OutcomeGeneric
	}
	if strings.TrimSpace(website) == "" {
		return OutcomeNoWebsite
	}
	if emailBase == BaseDomain(WebsiteDomain(website)) {
		return OutcomeMatch
	}
	return OutcomeMismatch
}

// EmailVerifiedScore is the trust score set when the OTP is confirmed.
func EmailVerifiedScore(workEmail, website string) int {
	switch CompareDomains(workEmail, website) {
	case OutcomeMatch:
		return ScoreDomainMatch
	case OutcomeMismatch:
		return ScoreDomainMismatch
	default:
		return ScoreNoWebsite
	}
}

// DocumentSubmittedScore adds the document bonus to the current score.
func DocumentSubmittedScore(current int) int {
	return Clamp(current + ScoreDocumentBonus)
}

// StartupSignals are the optional inputs of the startup alternative
// verification path.
type StartupSignals struct {
	LinkedInURL       string
	LinkedInFollowers int
	WebsiteHasSSL     bool
	FoundedYear       int
	WorkEmail         string
	CompanyWebsite    string
}

// StartupScore computes the alternative-verification score for startups:
// a base of 40 plus social presence, SSL, company age and domain-match
// signals, clamped to the global bounds.
func StartupScore(sig StartupSignals, now time.Time) int {
	score := 40

	if sig.LinkedInURL != "" {
		score += 10
		if sig.LinkedInFollowers > 100 {
			score += 5
		}
		if sig.LinkedInFollowers > 500 {
			score += 5
		}
	}

	if sig.WebsiteHasSSL {
		score += 10
	}

	if sig.FoundedYear > 0 {
		yearsOld := now.Year() - sig.FoundedYear
		if yearsOld > 0 {
			age := yearsOld * 3
			if age > 15 {
				age = 15
			}
			score += age
		}
	}

	if sig.CompanyWebsite != "" && sig.WorkEmail != "" &&
		CompareDomains(sig.WorkEmail, sig.CompanyWebsite) == OutcomeMatch {
		score += 10
	}

	return Clamp(score)
}

// Clamp bounds a score to [MinScore, MaxScore].
func Clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
