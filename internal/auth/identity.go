package auth

// Identity is the projection of an authenticated user handed back to the
// rest of the system. It contains public facts only; the password digest
// or any other sensitive column never leaves the credential store.
type Identity struct {
	ID    string // internal user identifier
	Email string // lookup email as stored
	Name  string // display name, may be empty
	Image string // avatar URL, may be empty
}
