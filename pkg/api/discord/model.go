package discord

type Member struct {
	ID    string
	Roles []string
}
