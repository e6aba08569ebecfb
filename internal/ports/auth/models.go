package auth

// Claims representa la información extraída del token del portal.
type Claims struct {
	UserID string
	Email  string
	OrgID  string
}
