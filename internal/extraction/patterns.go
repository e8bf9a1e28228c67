package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/willowgate/transcriptd/internal/validation"
)

// Pattern extraction targets the structure of advisor meetings: the
// location question near the start, family details in the middle, the
// close decision at the end. Windowing keeps false positives down; a state
// mentioned in passing at minute 40 is not where the client lives.
const (
	openingWindow = 3000 // transcript head searched for location
	answerWindow  = 500  // span after the location question
	closingWindow = 4000 // transcript tail searched for the outcome
)

var stateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut",
	"Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming",
}

var stateByAbbrev = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// Abbreviations that read as ordinary words get no matching at all.
var ambiguousAbbrevs = map[string]bool{
	"ID": true, "IN": true, "OR": true, "HI": true, "ME": true, "OK": true,
}

var (
	stateAlt     = strings.Join(stateNames, "|")
	canonByLower = buildCanonIndex()

	locationQuestionPattern = regexp.MustCompile(`(?i)where.*(joining|calling)\s+from|where\s+are\s+you\s+located|where\s+in\s+the\s+world`)

	highPriorityStatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)i\s+live\s+in\s+(` + stateAlt + `)\b`),
		regexp.MustCompile(`(?i)joining[^.]*?from[^.]*?\b(` + stateAlt + `)\b`),
		regexp.MustCompile(`(?i)calling[^.]*?from[^.]*?\b(` + stateAlt + `)\b`),
		regexp.MustCompile(`(?i)located\s+in\s+(` + stateAlt + `)\b`),
		regexp.MustCompile(`(?i)we're\s+in\s+(` + stateAlt + `)\b`),
	}
	mediumPriorityStatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)from\s+[^.]*?\b(` + stateAlt + `)\b`),
		regexp.MustCompile(`(?i)\bin\s+(` + stateAlt + `)\b`),
		regexp.MustCompile(`(?i)\b(` + stateAlt + `)\s*,`),
	}
	bareStatePattern = regexp.MustCompile(`(?i)\b(` + stateAlt + `)\b`)
)

func buildCanonIndex() map[string]string {
	idx := make(map[string]string, len(stateNames))
	for _, name := range stateNames {
		idx[strings.ToLower(name)] = name
	}
	return idx
}

func canonicalState(match string) string {
	return canonByLower[strings.ToLower(match)]
}

// ExtractState finds where the client is joining from. The answer to the
// location question outranks any later mention; abbreviations are only
// trusted in unambiguous contexts.
func ExtractState(content string) string {
	opening := head(content, openingWindow)

	if loc := locationQuestionPattern.FindStringIndex(opening); loc != nil {
		answer := head(opening[loc[1]:], answerWindow)
		if m := bareStatePattern.FindStringSubmatch(answer); m != nil {
			return canonicalState(m[1])
		}
		if name := findStateAbbrev(answer); name != "" {
			return name
		}
	}

	for _, p := range highPriorityStatePatterns {
		if m := p.FindStringSubmatch(opening); m != nil {
			return canonicalState(m[1])
		}
	}
	for _, p := range mediumPriorityStatePatterns {
		if m := p.FindStringSubmatch(opening); m != nil {
			return canonicalState(m[1])
		}
	}
	if m := bareStatePattern.FindStringSubmatch(opening); m != nil {
		return canonicalState(m[1])
	}
	return findStateAbbrev(opening)
}

var abbrevContextPattern = regexp.MustCompile(`(?:\b(?:from|in)\s+)?\b([A-Z]{2})\b\s*[,.]?`)

func findStateAbbrev(section string) string {
	for _, m := range abbrevContextPattern.FindAllStringSubmatch(section, -1) {
		abbrev := m[1]
		if ambiguousAbbrevs[abbrev] {
			continue
		}
		if name, ok := stateByAbbrev[abbrev]; ok {
			return name
		}
	}
	return ""
}

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)i'?\s*a?m\s+(\d{1,3})\s+years?\s+old`),
	regexp.MustCompile(`(?i)(\d{1,3})\s+years?\s+old`),
	regexp.MustCompile(`(?i)\bage\s+(\d{1,3})\b`),
	regexp.MustCompile(`(?i)turned\s+(\d{1,3})\b`),
	regexp.MustCompile(`(?i)(\d{1,3})-year-old`),
}

// ExtractAge returns the first plausible adult age mentioned, or 0.
func ExtractAge(content string) int {
	for _, p := range agePatterns {
		for _, m := range p.FindAllStringSubmatch(content, -1) {
			age, err := strconv.Atoi(m[1])
			if err == nil && age >= 18 && age <= 120 {
				return age
			}
		}
	}
	return 0
}

// maritalPatterns are ordered by specificity; the first hit wins.
var maritalPatterns = []struct {
	pattern *regexp.Regexp
	status  string
}{
	{regexp.MustCompile(`(?i)my\s+late\s+(wife|husband)\b`), "Widowed"},
	{regexp.MustCompile(`(?i)my\s+ex-(wife|husband)\b`), "Divorced"},
	{regexp.MustCompile(`(?i)my\s+(wife|husband|spouse)\b`), "Married"},
	{regexp.MustCompile(`(?i)(i'?\s*a?m|we'?\s*a?re)\s+married\b`), "Married"},
	{regexp.MustCompile(`(?i)i'?\s*a?m\s+single\b`), "Single"},
	{regexp.MustCompile(`(?i)i'?\s*a?m\s+divorced\b`), "Divorced"},
	{regexp.MustCompile(`(?i)i'?\s*a?m\s+widowed\b`), "Widowed"},
}

// ExtractMaritalStatus infers marital status from spousal references, or "".
func ExtractMaritalStatus(content string) string {
	for _, mp := range maritalPatterns {
		if mp.pattern.MatchString(content) {
			return mp.status
		}
	}
	return ""
}

var (
	childrenCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s+(?:children|kids)\b`),
	}
	childrenPairPattern    = regexp.MustCompile(`(?i)(\d+)\s+(?:sons?|daughters?)\s+and\s+(\d+)\s+(?:sons?|daughters?)`)
	sonMentionPattern      = regexp.MustCompile(`(?i)\bmy\s+son\b`)
	daughterMentionPattern = regexp.MustCompile(`(?i)\bmy\s+daughter\b`)
)

// ExtractChildrenCount counts children from explicit numbers first, then
// from "my son"/"my daughter" mentions. Returns -1 when nothing matched so
// callers can tell "no children" from "not mentioned".
func ExtractChildrenCount(content string) int {
	if m := childrenPairPattern.FindStringSubmatch(content); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if total := a + b; total >= 0 && total <= 20 {
			return total
		}
	}
	for _, p := range childrenCountPatterns {
		for _, m := range p.FindAllStringSubmatch(content, -1) {
			count, err := strconv.Atoi(m[1])
			if err == nil && count >= 0 && count <= 20 {
				return count
			}
		}
	}

	sons := len(sonMentionPattern.FindAllString(content, -1))
	daughters := len(daughterMentionPattern.FindAllString(content, -1))
	if sons+daughters > 0 {
		return sons + daughters
	}
	return -1
}

var estateValuePattern = regexp.MustCompile(`(?i)\$?\d{1,3}(?:,\d{3})*(?:\.\d+)?\s*(?:million|thousand|billion|[kmb]\b)?`)

// ExtractEstateValue finds the first monetary mention in a plausible estate
// range, or 0. Parsing is shared with the validation rules so both sides
// read "1.3 million" identically.
func ExtractEstateValue(content string) int64 {
	for _, m := range estateValuePattern.FindAllString(content, -1) {
		value := validation.ParseEstateValue(m)
		if value >= 10_000 && value <= 100_000_000 {
			return value
		}
	}
	return 0
}

// Outcome detection walks indicator tiers in priority order. Deferrals are
// checked before transaction evidence: "the payment won't go through today"
// contains both a payment mention and a deferral, and the deferral wins.
var (
	deferralIndicators = []*regexp.Regexp{
		regexp.MustCompile(`won'?t\s+be\s+able\s+to\s+do.*today`),
		regexp.MustCompile(`can'?t\s+do.*today`),
		regexp.MustCompile(`don'?t\s+have\s+the\s+funds`),
		regexp.MustCompile(`i'?ll\s+reach\s+out\s+to\s+you`),
		regexp.MustCompile(`follow\s+up\s+with\s+you`),
		regexp.MustCompile(`reach\s+out.*next\s+(week|month)`),
		regexp.MustCompile(`not\s+able\s+to\s+do\s+anything\s+today`),
		regexp.MustCompile(`we'?ll\s+get\s+you\s+set\s+up\s+then`),
	}
	transactionIndicators = []*regexp.Regexp{
		regexp.MustCompile(`processed\s+the\s+payment`),
		regexp.MustCompile(`building\s+out\s+your\s+documents`),
		regexp.MustCompile(`finish\s+building\s+out\s+your\s+account`),
		regexp.MustCompile(`pull\s+the\s+trigger`),
		regexp.MustCompile(`already\s+charged`),
		regexp.MustCompile(`payment\s+went\s+through`),
		regexp.MustCompile(`card\s+was\s+charged`),
		regexp.MustCompile(`transaction.*complete`),
	}
	commitmentIndicators = []*regexp.Regexp{
		regexp.MustCompile(`schedule.*next\s+meeting`),
		regexp.MustCompile(`let'?s\s+do\s+it`),
		regexp.MustCompile(`i'?m\s+ready\s+to\s+(move\s+forward|proceed|get\s+started)`),
		regexp.MustCompile(`sign\s+me\s+up`),
		regexp.MustCompile(`let'?s\s+move\s+forward`),
		regexp.MustCompile(`i\s+want\s+to\s+go\s+ahead`),
		regexp.MustCompile(`sounds\s+like\s+a\s+plan`),
	}
	lostIndicators = []*regexp.Regexp{
		regexp.MustCompile(`not\s+interested`),
		regexp.MustCompile(`too\s+expensive`),
		regexp.MustCompile(`can'?t\s+afford`),
		regexp.MustCompile(`i'?ll\s+pass`),
		regexp.MustCompile(`no\s+thank\s+you`),
		regexp.MustCompile(`this\s+isn'?t\s+for\s+me`),
		regexp.MustCompile(`not\s+at\s+this\s+time`),
	}
	followUpIndicators = []*regexp.Regexp{
		regexp.MustCompile(`need\s+to\s+think\s+about\s+it`),
		regexp.MustCompile(`let\s+me\s+discuss\s+with`),
		regexp.MustCompile(`i'?ll\s+get\s+back\s+to\s+you`),
		regexp.MustCompile(`need\s+to\s+talk\s+to\s+my`),
		regexp.MustCompile(`give\s+me\s+a\s+few\s+days`),
		regexp.MustCompile(`call\s+me\s+back`),
		regexp.MustCompile(`this\s+(was|has\s+been)\s+(very\s+)?helpful`),
	}
)

// ExtractMeetingOutcome classifies how the meeting ended, or returns "".
func ExtractMeetingOutcome(content string) string {
	ending := strings.ToLower(tail(content, closingWindow))

	for _, p := range deferralIndicators {
		if p.MatchString(ending) {
			return "Follow Up"
		}
	}
	for _, p := range transactionIndicators {
		if loc := p.FindStringIndex(ending); loc != nil {
			if !deferralNearby(ending, loc[0], loc[1]) {
				return "Closed Won"
			}
		}
	}
	for _, p := range commitmentIndicators {
		if p.MatchString(ending) {
			return "Closed Won"
		}
	}
	for _, p := range lostIndicators {
		if p.MatchString(ending) {
			return "Closed Lost"
		}
	}
	for _, p := range followUpIndicators {
		if p.MatchString(ending) {
			return "Follow Up"
		}
	}
	return ""
}

var nearbyDeferralPattern = regexp.MustCompile(`won'?t\s+be\s+able|can'?t\s+do|don'?t\s+have\s+the\s+funds`)

func deferralNearby(ending string, start, end int) bool {
	ctxStart := max(0, start-200)
	ctxEnd := min(len(ending), end+200)
	return nearbyDeferralPattern.MatchString(ending[ctxStart:ctxEnd])
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
