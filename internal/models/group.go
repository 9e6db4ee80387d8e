package models

// Group is a named collection of members sharing expenses to be settled.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Trip", "Roommates").
	Name string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// Archived marks a group that is no longer edited from the normal flow.
	// Archived groups stay fully computable.
	Archived bool

	// Members are the participants, in insertion order.
	Members []Member

	// Expenses are the shared expenses (including settlements), in insertion order.
	Expenses []Expense
}

// Member is a participant in a group.
type Member struct {
	// ID is the stable identifier of the member (UUID format). It never changes.
	ID string

	// Name is the display name of the member.
	Name string

	// Color is a display-only avatar color as a hex string without '#'.
	Color string
}

// MemberPalette is the set of avatar colors handed out to new members.
var MemberPalette = []string{"007AFF", "FF9500", "AF52DE", "FF2D55", "5856D6", "34C759"}

// FindMember returns the member with the given ID.
func (g *Group) FindMember(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// FindExpense returns the expense with the given ID.
func (g *Group) FindExpense(id string) (Expense, bool) {
	for _, e := range g.Expenses {
		if e.ID == id {
			return e, true
		}
	}
	return Expense{}, false
}
