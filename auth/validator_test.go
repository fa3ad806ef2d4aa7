package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	valid := RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "alice",
		Password:    "CorrectHorse1!",
	}

	t.Run("valid request passes", func(t *testing.T) {
		require.NoError(t, ValidateRegister(valid))
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		require.Error(t, ValidateRegister(req))
	})

	t.Run("display name too short", func(t *testing.T) {
		req := valid
		req.DisplayName = "a"
		require.Error(t, ValidateRegister(req))
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "Short1!"
		require.Error(t, ValidateRegister(req))
	})

	t.Run("long password without symbols", func(t *testing.T) {
		req := valid
		req.Password = "onlylowercaseletters"
		require.Error(t, ValidateRegister(req))
	})
}

func TestValidateCreateRoom(t *testing.T) {
	require.NoError(t, ValidateCreateRoom(CreateRoomRequest{Name: "general"}))
	require.Error(t, ValidateCreateRoom(CreateRoomRequest{Name: ""}))
}
