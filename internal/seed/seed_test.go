package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories/memory"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	auth.BcryptCost = bcrypt.MinCost
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	admin := Admin{Username: "admin", Password: "Passw0rd1", FullName: "Administrator", PhoneNumber: "+84901234567"}

	created, err := EnsureAdmin(ctx, repos.Accounts, admin, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, created)

	account, err := repos.Accounts.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)
	assert.NotEqual(t, "Passw0rd1", account.Password)
	assert.True(t, auth.CheckPassword(account.Password, "Passw0rd1"))

	created, err = EnsureAdmin(ctx, repos.Accounts, admin, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureAdminWithoutPassword(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	created, err := EnsureAdmin(ctx, repos.Accounts, Admin{Username: "admin"}, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)

	accounts, err := repos.Accounts.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
