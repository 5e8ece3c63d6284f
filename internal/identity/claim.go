package identity

// ClaimKind enumerates the standard claims a User can answer.
type ClaimKind int

const (
	// ClaimUnsupported is the kind of every claim name not listed below.
	ClaimUnsupported ClaimKind = iota
	// ClaimName is "name", requested through the "profile" scope.
	ClaimName
	// ClaimEmail is "email", requested through the "email" scope.
	ClaimEmail
	// ClaimAddress is "address", requested through the "address" scope.
	ClaimAddress
	// ClaimPhoneNumber is "phone_number", requested through the "phone" scope.
	ClaimPhoneNumber
)

var claimKinds = map[string]ClaimKind{ //nolint:gochecknoglobals
	"name":         ClaimName,
	"email":        ClaimEmail,
	"address":      ClaimAddress,
	"phone_number": ClaimPhoneNumber,
}

// ParseClaimKind maps a claim name to its kind.
func ParseClaimKind(claimName string) ClaimKind {
	if kind, ok := claimKinds[claimName]; ok {
		return kind
	}

	return ClaimUnsupported
}

// String returns the claim name of the kind.
func (k ClaimKind) String() string {
	for name, kind := range claimKinds {
		if kind == k {
			return name
		}
	}

	return "unsupported"
}

type claimExtractor func(u *User) any

var claimExtractors = map[ClaimKind]claimExtractor{ //nolint:gochecknoglobals
	ClaimUnsupported: func(*User) any { return nil },
	ClaimName:        func(u *User) any { return nonEmpty(u.Name) },
	ClaimEmail:       func(u *User) any { return nonEmpty(u.Email) },
	ClaimAddress: func(u *User) any {
		// avoid handing out a typed nil inside the interface
		if u.Address == nil {
			return nil
		}

		return u.Address
	},
	ClaimPhoneNumber: func(u *User) any { return nonEmpty(u.PhoneNumber) },
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}
