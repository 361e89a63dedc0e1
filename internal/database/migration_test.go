package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Seed ile yazılan admin hash'i belgelenen şifreyle açılabilmelidir; aksi
// halde taze kurulumda hiçbir admin giriş yapamaz.
func TestDefaultAdminPasswordHashVerifies(t *testing.T) {
	hash, err := defaultAdminPasswordHash()
	require.NoError(t, err)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(defaultAdminPassword)))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("yanlis")))
}
