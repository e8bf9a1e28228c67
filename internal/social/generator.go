// Package social turns anonymized meeting themes into platform-sized posts.
// Content never names clients or amounts; it speaks to the topic of the
// meeting (blended families, business succession, tax exposure) so the firm
// can publish without a privacy review per post.
package social

import (
	"fmt"
	"strings"

	"github.com/willowgate/transcriptd/internal/record"
)

// PlatformSpec bounds a post for one network.
type PlatformSpec struct {
	MaxLength    int
	HashtagLimit int
}

// Specs are the supported platforms and their limits.
var Specs = map[string]PlatformSpec{
	"linkedin":  {MaxLength: 3000, HashtagLimit: 5},
	"twitter":   {MaxLength: 280, HashtagLimit: 3},
	"instagram": {MaxLength: 2200, HashtagLimit: 10},
	"facebook":  {MaxLength: 2000, HashtagLimit: 5},
}

// Post is one rendered piece of platform content.
type Post struct {
	Platform string   `json:"platform"`
	Body     string   `json:"body"`
	Hashtags []string `json:"hashtags"`
}

// theme captures an anonymized angle extracted from the record.
type theme struct {
	hook    string
	insight string
	tags    []string
}

// Generator renders posts for a configured set of platforms.
type Generator struct {
	platforms []string
	firmName  string
}

// NewGenerator creates a generator. Unknown platform names are dropped.
func NewGenerator(platforms []string, firmName string) *Generator {
	var supported []string
	for _, p := range platforms {
		if _, ok := Specs[strings.ToLower(p)]; ok {
			supported = append(supported, strings.ToLower(p))
		}
	}
	return &Generator{platforms: supported, firmName: firmName}
}

// Generate produces one post per configured platform from the record's
// anonymized themes. Returns nil when the record offers no usable theme.
func (g *Generator) Generate(rec record.Record) []Post {
	th := pickTheme(rec)
	if th == nil {
		return nil
	}

	posts := make([]Post, 0, len(g.platforms))
	for _, platform := range g.platforms {
		spec := Specs[platform]
		posts = append(posts, renderPost(platform, spec, th))
	}
	return posts
}

// pickTheme chooses the strongest anonymized angle. Estate size and family
// structure beat generic consultation notes.
func pickTheme(rec record.Record) *theme {
	children := rec.IntOr("children_count", -1)
	switch {
	case rec.Text("entity_type") != "" && rec.Text("entity_type") != "None":
		return &theme{
			hook:    "Business owners: your operating agreement is not an estate plan.",
			insight: "Met with a family this week whose business interest had no succession path at all. The fix took one conversation to start. The cost of waiting would have landed on their kids.",
			tags:    []string{"#EstatePlanning", "#BusinessSuccession", "#FamilyBusiness", "#WealthPlanning", "#SmallBusiness"},
		}
	case rec.Text("marital_status") == "Married" && children > 0:
		return &theme{
			hook:    "Most parents assume their spouse automatically gets everything. Most parents are wrong.",
			insight: "Sat down with a couple this week who had never named guardians or beneficiaries. Thirty minutes of planning closed gaps they didn't know existed.",
			tags:    []string{"#EstatePlanning", "#FamilyFirst", "#Guardianship", "#WealthPlanning", "#Parenting"},
		}
	case rec.Filled("estate_value"):
		return &theme{
			hook:    "An estate plan isn't about how much you have. It's about who carries the weight when you're gone.",
			insight: "This week's meetings were a reminder that the families who plan early spend less, fight less, and grieve with fewer surprises.",
			tags:    []string{"#EstatePlanning", "#LegacyPlanning", "#WealthPlanning", "#FinancialWellness", "#FamilyFirst"},
		}
	case rec.Filled("meeting_stage"):
		return &theme{
			hook:    "Real talk: the best time to make an estate plan was ten years ago. The second best time is this week.",
			insight: "Every consultation starts the same way - \"we've been meaning to do this for years.\" Start the conversation. The rest is easier than you think.",
			tags:    []string{"#EstatePlanning", "#GetStarted", "#FinancialWellness"},
		}
	}
	return nil
}

func renderPost(platform string, spec PlatformSpec, th *theme) Post {
	tags := th.tags
	if len(tags) > spec.HashtagLimit {
		tags = tags[:spec.HashtagLimit]
	}

	body := th.hook + "\n\n" + th.insight
	tagLine := strings.Join(tags, " ")

	// Reserve room for the hashtag line; trim the insight, never the hook.
	budget := spec.MaxLength - len(tagLine) - 2
	if len(body) > budget {
		if len(th.hook) >= budget {
			body = truncate(th.hook, budget)
		} else {
			body = truncate(body, budget)
		}
	}

	return Post{
		Platform: platform,
		Body:     fmt.Sprintf("%s\n\n%s", body, tagLine),
		Hashtags: tags,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
