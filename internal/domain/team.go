package domain

// Team is the group that handles a ticket.
type Team string

const (
	TeamFinance Team = "Finance"
	TeamTech    Team = "Tech"
	TeamSupport Team = "Support"
)
