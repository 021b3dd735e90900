package entity

// TokenPair is what a successful sign-in hands back to the dashboard.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// ClientMeta describes the client a session was issued to.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// Identity is a user asserted by the hosted identity provider.
type Identity struct {
	Subject string
	Email   string
}
