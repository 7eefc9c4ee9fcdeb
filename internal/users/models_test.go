package users

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserPrepare(t *testing.T) {
	u := &User{Email: "  Test@Example.COM "}
	u.Prepare()

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "test@example.com", u.Email)

	id := u.ID
	u.Prepare()
	assert.Equal(t, id, u.ID)
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("USER"))
	assert.True(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole("user"))
}
