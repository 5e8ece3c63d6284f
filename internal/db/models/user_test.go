package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

func TestPasswordHashing(t *testing.T) {
	u := User{Password: HashPassword("jane")}

	assert.NotEqual(t, "jane", u.Password)
	assert.True(t, u.VerifyPassword("jane"))
	assert.False(t, u.VerifyPassword("Jane"))
	assert.False(t, u.VerifyPassword(""))

	broken := User{Password: "not-a-hash"}
	assert.False(t, broken.VerifyPassword("jane"))
}

func TestUser_IdentityRoundTrip(t *testing.T) {
	in := identity.User{
		Subject:     "1003",
		LoginID:     "max",
		Password:    "max",
		Name:        "Max Meier",
		Email:       "max@example.com",
		Address:     &identity.Address{Country: "Germany"},
		PhoneNumber: "+49 (30) 210 94-0",
	}

	row := NewUser(in)
	assert.True(t, row.Active)
	assert.True(t, row.VerifyPassword("max"))

	out := row.Identity()
	require.NotNil(t, out.Address)
	assert.Equal(t, "Germany", out.Address.Country)
	assert.Empty(t, out.Password)

	in.Password = ""
	assert.Equal(t, in, *out)
}

func TestUser_IdentityWithoutAddress(t *testing.T) {
	row := User{Subject: "1", LoginID: "a"}

	assert.Nil(t, row.Identity().Address)
}
