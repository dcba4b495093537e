package service

import (
	"strings"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

// teamRule routes an issue type to team when it contains any keyword.
type teamRule struct {
	team     domain.Team
	keywords []string
}

// Rules are checked in order; the first match wins. Matching is case-sensitive.
var teamRules = []teamRule{
	{team: domain.TeamFinance, keywords: []string{"Payment"}},
	{team: domain.TeamTech, keywords: []string{"Login", "Bug"}},
}

var cannedReplies = map[domain.Team]string{
	domain.TeamFinance: "Thank you! Our Finance team will help you with your payment issue within 24 hours.",
	domain.TeamTech:    "Thank you! Our Tech team is looking into your issue and will fix it soon.",
	domain.TeamSupport: "Thank you! Our Support team will get back to you shortly.",
}

// AssignTeam picks the team for an issue type. Anything unmatched, including
// the empty string, goes to Support.
func AssignTeam(issueType string) domain.Team {
	for _, rule := range teamRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(issueType, keyword) {
				return rule.team
			}
		}
	}
	return domain.TeamSupport
}

// ReplyFor returns the canned reply for team.
func ReplyFor(team domain.Team) string {
	if reply, ok := cannedReplies[team]; ok {
		return reply
	}
	return cannedReplies[domain.TeamSupport]
}
