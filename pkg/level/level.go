// Package level classifies documentation URLs into menu levels.
//
// A menu level names the navigational subtree that is expanded in the side
// navigation. Classification walks an explicitly ordered rule table and the
// first matching rule wins, so versioned reference rules must come before
// their unversioned counterparts.
package level

import (
	"errors"
	"fmt"
	"strings"
)

// Level identifies the active navigational subtree.
// The zero value means nothing has been classified yet.
type Level string

const (
	None Level = ""

	Home           Level = "home"
	GettingStarted Level = "gettingstarted"
	Database       Level = "database"
	Auth           Level = "auth"
	Functions      Level = "functions"
	Realtime       Level = "realtime"
	Storage        Level = "storage"
	Platform       Level = "platform"
	Resources      Level = "resources"
	Integrations   Level = "integrations"
	SelfHosting    Level = "self_hosting"
	Reference      Level = "reference"

	ReferenceJavaScriptV1        Level = "reference_javascript_v1"
	ReferenceJavaScriptV2        Level = "reference_javascript_v2"
	ReferenceDartV0              Level = "reference_dart_v0"
	ReferenceDartV1              Level = "reference_dart_v1"
	ReferenceCLI                 Level = "reference_cli"
	ReferenceAPI                 Level = "reference_api"
	ReferenceSelfHostingAuth     Level = "reference_self_hosting_auth"
	ReferenceSelfHostingStorage  Level = "reference_self_hosting_storage"
	ReferenceSelfHostingRealtime Level = "reference_self_hosting_realtime"
)

// String returns the identifier as written in URLs, templates and JSON.
func (l Level) String() string {
	return string(l)
}

// Match selects how a rule pattern is compared against a URL.
type Match int

const (
	// MatchContains fires when the URL contains the pattern anywhere.
	MatchContains Match = iota
	// MatchExact fires when the URL equals the pattern, ignoring one trailing slash.
	MatchExact
)

// Rule maps a URL pattern to a menu level.
type Rule struct {
	Pattern string
	Level   Level
	Match   Match
}

func (r Rule) matches(url string) bool {
	if r.Match == MatchExact {
		if url != "/" {
			url = strings.TrimSuffix(url, "/")
		}
		return url == r.Pattern
	}
	return strings.Contains(url, r.Pattern)
}

// ErrShadowedRule is returned when a rule can never fire because an
// earlier rule always matches first.
var ErrShadowedRule = errors.New("shadowed rule")

// DefaultRules returns the documentation site's rule table rooted at basePath
// (for example "/docs"). Order is significant.
func DefaultRules(basePath string) []Rule {
	base := strings.TrimSuffix(basePath, "/")
	guides := base + "/guides"
	ref := base + "/reference"

	home := base
	if home == "" {
		home = "/"
	}

	return []Rule{
		{Pattern: home, Level: Home, Match: MatchExact},

		{Pattern: guides + "/getting-started", Level: GettingStarted},
		{Pattern: guides + "/database", Level: Database},
		{Pattern: guides + "/auth", Level: Auth},
		{Pattern: guides + "/functions", Level: Functions},
		{Pattern: guides + "/realtime", Level: Realtime},
		{Pattern: guides + "/storage", Level: Storage},
		{Pattern: guides + "/platform", Level: Platform},
		{Pattern: guides + "/resources", Level: Resources},
		{Pattern: guides + "/self-hosting", Level: SelfHosting},
		{Pattern: guides + "/integrations", Level: Integrations},

		// versioned client libraries before latest
		{Pattern: ref + "/javascript/v1", Level: ReferenceJavaScriptV1},
		{Pattern: ref + "/javascript", Level: ReferenceJavaScriptV2},
		{Pattern: ref + "/dart/v0", Level: ReferenceDartV0},
		{Pattern: ref + "/dart", Level: ReferenceDartV1},

		{Pattern: ref + "/cli", Level: ReferenceCLI},
		{Pattern: ref + "/api", Level: ReferenceAPI},
		{Pattern: ref + "/self-hosting-auth", Level: ReferenceSelfHostingAuth},
		{Pattern: ref + "/self-hosting-storage", Level: ReferenceSelfHostingStorage},
		{Pattern: ref + "/self-hosting-realtime", Level: ReferenceSelfHostingRealtime},
	}
}

// Classifier evaluates an ordered rule table.
type Classifier struct {
	rules []Rule
}

// NewClassifier validates the rule table and returns a classifier over a copy of it.
func NewClassifier(rules []Rule) (*Classifier, error) {
	if err := Check(rules); err != nil {
		return nil, err
	}

	c := &Classifier{rules: make([]Rule, len(rules))}
	copy(c.rules, rules)

	return c, nil
}

// Check reports the first rule that is unreachable because an earlier
// contains-rule pattern is a substring of its pattern.
func Check(rules []Rule) error {
	for i, later := range rules {
		if later.Pattern == "" {
			return fmt.Errorf("rule %d (%s): empty pattern", i, later.Level)
		}
		for _, earlier := range rules[:i] {
			if earlier.Match != MatchContains {
				continue
			}
			if strings.Contains(later.Pattern, earlier.Pattern) {
				return fmt.Errorf("%w: %q (%s) never fires after %q (%s)",
					ErrShadowedRule, later.Pattern, later.Level, earlier.Pattern, earlier.Level)
			}
		}
	}
	return nil
}

// Classify returns the level of the first rule matching url.
// The boolean is false when no rule matches.
func (c *Classifier) Classify(url string) (Level, bool) {
	for _, r := range c.rules {
		if r.matches(url) {
			return r.Level, true
		}
	}
	return None, false
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
