package models

// Group represents a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Lisbon").
	Name string

	// Emoji is a short decoration shown next to the name.
	Emoji string

	// CreatedBy is the username of the member who created the group.
	CreatedBy string

	// Members is the list of usernames in this group, in join order.
	// The creator is always a member.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether username belongs to the group.
func (g *Group) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}
