package service

import (
	"strings"
	"testing"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

func TestAssignTeam(t *testing.T) {
	cases := []struct {
		issueType string
		want      domain.Team
	}{
		{"Payment Issue", domain.TeamFinance},
		{"Refund after Payment", domain.TeamFinance},
		{"Login Problem", domain.TeamTech},
		{"Bug Report", domain.TeamTech},
		{"General Question", domain.TeamSupport},
		{"", domain.TeamSupport},
		// Payment is checked first.
		{"Payment Bug", domain.TeamFinance},
		{"Login after Payment", domain.TeamFinance},
		// Case-sensitive substring match.
		{"payment issue", domain.TeamSupport},
		{"login problem", domain.TeamSupport},
		{"BUG", domain.TeamSupport},
		{"Debugging", domain.TeamSupport},
		{"Bugfix", domain.TeamTech},
	}
	for _, tc := range cases {
		if got := AssignTeam(tc.issueType); got != tc.want {
			t.Errorf("AssignTeam(%q) = %q, want %q", tc.issueType, got, tc.want)
		}
	}
}

func TestReplyFor(t *testing.T) {
	if reply := ReplyFor(domain.TeamFinance); !strings.Contains(reply, "24 hours") {
		t.Errorf("Finance reply should mention 24 hours: %q", reply)
	}
	if got, want := ReplyFor(domain.TeamTech), "Thank you! Our Tech team is looking into your issue and will fix it soon."; got != want {
		t.Errorf("Tech reply = %q, want %q", got, want)
	}
	if got, want := ReplyFor(domain.TeamSupport), "Thank you! Our Support team will get back to you shortly."; got != want {
		t.Errorf("Support reply = %q, want %q", got, want)
	}
	if got := ReplyFor(domain.Team("Legal")); got != ReplyFor(domain.TeamSupport) {
		t.Errorf("unknown team reply = %q, want Support reply", got)
	}
}

func TestEveryTeamHasAReply(t *testing.T) {
	for _, team := range []domain.Team{domain.TeamFinance, domain.TeamTech, domain.TeamSupport} {
		if strings.TrimSpace(ReplyFor(team)) == "" {
			t.Errorf("team %q has no reply", team)
		}
		if !strings.Contains(ReplyFor(team), string(team)) {
			t.Errorf("reply for %q does not name the team", team)
		}
	}
}
