package portfolio

import "strings"

// Identity is what the identity provider tells us about the active session.
// Empty DisplayName or Email means the provider did not supply one.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
}

// SeedName is the display name, falling back to the local part of the email.
func (id Identity) SeedName() string {
	if name := strings.TrimSpace(id.DisplayName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(id.Email, "@")
	return local
}
