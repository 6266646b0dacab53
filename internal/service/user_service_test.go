package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techclub/club-portal/internal/models"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	users map[string]*models.User // keyed by user_id
}

func newMockUserRepo(seed ...*models.User) *mockUserRepo {
	m := &mockUserRepo{users: map[string]*models.User{}}
	for _, u := range seed {
		m.users[u.UserID] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.users[user.UserID] = user
	return nil
}
func (m *mockUserRepo) FindByID(ctx context.Context, userID string) (*models.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.users[user.UserID] = user
	return nil
}
func (m *mockUserRepo) Relink(ctx context.Context, oldID, newID string) error {
	u := m.users[oldID]
	delete(m.users, oldID)
	u.UserID = newID
	u.Provisioned = false
	m.users[newID] = u
	return nil
}
func (m *mockUserRepo) Delete(ctx context.Context, userID string) error {
	delete(m.users, userID)
	return nil
}

// countingRegRepo overrides CountByUser on the read-only registration mock.
type countingRegRepo struct {
	mockRegistrationRepo
	count int64
}

func (m *countingRegRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return m.count, nil
}

// --- Tests ---

func TestProvisionMember_GeneratesPlaceholderID(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &countingRegRepo{})

	user := &models.User{Name: "New Member", Email: "new@college.edu"}
	require.NoError(t, svc.ProvisionMember(context.Background(), user))

	assert.True(t, strings.HasPrefix(user.UserID, "prov_"))
	assert.True(t, user.Provisioned)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestProvisionMember_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo(&models.User{UserID: "uid-1", Email: "taken@college.edu"})
	svc := NewUserService(repo, &countingRegRepo{})

	err := svc.ProvisionMember(context.Background(), &models.User{Name: "X", Email: "taken@college.edu"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteUser_HasRegistrations(t *testing.T) {
	repo := newMockUserRepo(&models.User{UserID: "uid-1", Email: "a@college.edu"})
	svc := NewUserService(repo, &countingRegRepo{count: 2})

	err := svc.DeleteUser(context.Background(), "uid-1")
	assert.ErrorIs(t, err, ErrHasRegistrations)

	// The guard leaves the row intact.
	_, err = repo.FindByID(context.Background(), "uid-1")
	assert.NoError(t, err)
}

func TestDeleteUser_NoRegistrations(t *testing.T) {
	repo := newMockUserRepo(&models.User{UserID: "uid-1", Email: "a@college.edu"})
	svc := NewUserService(repo, &countingRegRepo{count: 0})

	require.NoError(t, svc.DeleteUser(context.Background(), "uid-1"))

	_, err := repo.FindByID(context.Background(), "uid-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), &countingRegRepo{})
	err := svc.DeleteUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLinkIdentity_ReconcilesProvisionedRow(t *testing.T) {
	repo := newMockUserRepo(&models.User{
		UserID:      "prov_abc",
		Name:        "Provisioned Member",
		Email:       "member@college.edu",
		Role:        models.RoleStudent,
		Provisioned: true,
	})
	svc := NewUserService(repo, &countingRegRepo{})

	user, err := svc.LinkIdentity(context.Background(), "idp-sub-42", "member@college.edu", "Member")
	require.NoError(t, err)
	assert.Equal(t, "idp-sub-42", user.UserID)
	assert.False(t, user.Provisioned)
	assert.Equal(t, "Provisioned Member", user.Name)

	// The placeholder row is gone; the linked row is addressable by subject.
	_, err = repo.FindByID(context.Background(), "prov_abc")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	linked, err := repo.FindByID(context.Background(), "idp-sub-42")
	require.NoError(t, err)
	assert.Equal(t, "member@college.edu", linked.Email)
}

func TestLinkIdentity_FirstSignInCreatesStudent(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &countingRegRepo{})

	user, err := svc.LinkIdentity(context.Background(), "idp-sub-7", "fresh@college.edu", "Fresh Student")
	require.NoError(t, err)
	assert.Equal(t, "idp-sub-7", user.UserID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.False(t, user.Provisioned)
}

func TestLinkIdentity_AlreadyLinkedIsIdempotent(t *testing.T) {
	repo := newMockUserRepo(&models.User{UserID: "idp-sub-7", Email: "fresh@college.edu"})
	svc := NewUserService(repo, &countingRegRepo{})

	user, err := svc.LinkIdentity(context.Background(), "idp-sub-7", "fresh@college.edu", "")
	require.NoError(t, err)
	assert.Equal(t, "idp-sub-7", user.UserID)
}

func TestLinkIdentity_EmailBoundToAnotherSubject(t *testing.T) {
	repo := newMockUserRepo(&models.User{UserID: "idp-sub-1", Email: "dup@college.edu"})
	svc := NewUserService(repo, &countingRegRepo{})

	_, err := svc.LinkIdentity(context.Background(), "idp-sub-2", "dup@college.edu", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUser_EmailCollision(t *testing.T) {
	repo := newMockUserRepo(
		&models.User{UserID: "uid-1", Name: "A", Email: "a@college.edu"},
		&models.User{UserID: "uid-2", Name: "B", Email: "b@college.edu"},
	)
	svc := NewUserService(repo, &countingRegRepo{})

	_, err := svc.UpdateUser(context.Background(), &models.User{
		UserID: "uid-1", Name: "A", Email: "b@college.edu", Role: models.RoleStudent,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
