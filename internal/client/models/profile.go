package models

// Profile is the slice of a user profile the client touches: the avatar URL
// after an avatar upload, nothing else.
type Profile struct {
	ID        string
	FullName  string
	AvatarURL string
}
