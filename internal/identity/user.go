package identity

// Address is the OpenID Connect "address" claim value.
type Address struct {
	Country       string `json:"country,omitempty"`
	Formatted     string `json:"formatted,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`
	Locality      string `json:"locality,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
}

// User is an end-user known to the directory.
type User struct {
	// Subject is the stable unique identifier reported to the engine as "sub".
	Subject string `json:"subject"`
	// LoginID is the identifier typed into the login form.
	LoginID string `json:"loginId,omitempty"`
	// Password is only used for directory lookup and never serialized.
	Password    string   `json:"-"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Address     *Address `json:"address,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
}

// GetClaim returns the value of a standard claim or nil when the claim is
// unsupported or the field is empty. languageTag is accepted for claims with
// locale variants, none of which are supported yet.
func (u *User) GetClaim(claimName, languageTag string) any {
	_ = languageTag

	if u == nil {
		return nil
	}

	return claimExtractors[ParseClaimKind(claimName)](u)
}
