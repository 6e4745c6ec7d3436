package domain

// Account is a mailbox identity shown in the navigation pane.
type Account struct {
	Label string
	Email string
}

func (a Account) String() string {
	if a.Label == "" {
		return a.Email
	}
	return a.Label
}

// Initials returns up to two uppercase initials of the account name.
func (a Account) Initials() string {
	return initials(a.String())
}
