package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"satay/internal/domain"
	"satay/pkg/logger"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	fail   bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

var errStorage = errors.New("storage hatası")

func (r *fakeUserRepo) FindByID(id int64) (*domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	if r.fail {
		return errStorage
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateProfile(id int64, fullName string, phone, address *string) error {
	if user, ok := r.users[id]; ok {
		user.FullName = fullName
		user.PhoneNumber = phone
		user.Address = address
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(id int64, passwordHash string) error {
	if user, ok := r.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) FindAll(role string) ([]*domain.User, error) {
	var users []*domain.User
	for _, user := range r.users {
		if role == "" || user.Role == role {
			clone := *user
			clone.PasswordHash = ""
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(id int64) error {
	delete(r.users, id)
	return nil
}

func newTestUserService(repo domain.UserRepository) domain.UserService {
	return NewUserService(repo, logger.New(logger.ErrorLevel, nil))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register("Ali Veli", "ali@example.com", "sifre123", "", nil, nil)
	require.NoError(t, err)

	_, err = svc.Register("Baska Ali", "ali@example.com", "baska456", "", nil, nil)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)

	count := 0
	for _, user := range repo.users {
		if user.Email == "ali@example.com" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestRegisterDefaultsToMemberRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Register("Ali Veli", "ali@example.com", "sifre123", "", nil, nil)
	require.NoError(t, err)
	require.Equal(t, domain.UserRoleMember, user.Role)
	require.NotEqual(t, "sifre123", user.PasswordHash)
	require.NotEmpty(t, user.PasswordHash)
}

func TestAuthenticateUniformFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register("Ali Veli", "ali@example.com", "sifre123", "", nil, nil)
	require.NoError(t, err)

	user, err := svc.Authenticate("ali@example.com", "sifre123")
	require.NoError(t, err)
	require.Equal(t, "ali@example.com", user.Email)

	_, errWrongPassword := svc.Authenticate("ali@example.com", "yanlis")
	_, errUnknownEmail := svc.Authenticate("yok@example.com", "sifre123")

	require.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, domain.ErrInvalidCredentials)
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestChangePasswordInvalidatesOldPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Register("Ali Veli", "ali@example.com", "eski123", "", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(user.ID, "yeni456"))

	_, err = svc.Authenticate("ali@example.com", "eski123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate("ali@example.com", "yeni456")
	require.NoError(t, err)

	_, err = svc.Authenticate("ali@example.com", "ucuncu789")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestDeleteUserThenAuthenticateFails(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Register("Ali Veli", "ali@example.com", "sifre123", "", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))

	_, err = svc.Authenticate("ali@example.com", "sifre123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetUserByIDNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.GetUserByID(42)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterHidesStorageError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.fail = true
	svc := newTestUserService(repo)

	_, err := svc.Register("Ali Veli", "ali@example.com", "sifre123", "", nil, nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
}

func TestListUsersRoleFilter(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register("Uye Bir", "uye@example.com", "sifre123", domain.UserRoleMember, nil, nil)
	require.NoError(t, err)
	_, err = svc.Register("Yonetici", "admin@example.com", "sifre123", domain.UserRoleAdmin, nil, nil)
	require.NoError(t, err)

	admins, err := svc.ListUsers(domain.UserRoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, "admin@example.com", admins[0].Email)

	all, err := svc.ListUsers("")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
