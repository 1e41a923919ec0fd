package flows

// Deps groups flow dependency sets. The root engine builds this once and
// delegates request methods to the matching flow implementation.
type Deps struct {
	Login        LoginDeps
	Logout       LogoutDeps
	Resolve      ResolveDeps
	Authenticate AuthenticateDeps
}

// FlowIdentity is the flow-local identity snapshot shape shared by login and
// authenticate flows.
type FlowIdentity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// FlowClaims is the flow-local view of a live token's cache entry.
type FlowClaims struct {
	UserID string
	Role   string
}
