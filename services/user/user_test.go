package user

import (
	"context"
	"testing"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	users   map[string]*models.User
	updates map[string][]bson.M
}

func newMemUsers() *memUsers {
	return &memUsers{
		users:   make(map[string]*models.User),
		updates: make(map[string][]bson.M),
	}
}

func (m *memUsers) Create(u *models.User) error {
	copy := *u
	m.users[u.ID] = &copy
	return nil
}

func (m *memUsers) GetByID(id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (m *memUsers) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return m.GetByID(id)
}

func (m *memUsers) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetAll(page, limit int64) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) UpdateWithDocument(id string, update bson.M) error {
	m.updates[id] = append(m.updates[id], update)
	return nil
}

func (m *memUsers) UpdateStats(string, models.UserStats) error { return nil }
func (m *memUsers) UpdateRating(string, models.Rating) error   { return nil }

func (m *memUsers) Delete(id string) error {
	delete(m.users, id)
	return nil
}

func acceptedConsent() models.KVKKConsent {
	return models.KVKKConsent{Accepted: true}
}

func TestRegisterValidation(t *testing.T) {
	svc := &DefaultUserService{Repo: newMemUsers()}
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "secret1", Role: models.RoleCustomer, KVKKConsent: acceptedConsent()}},
		{"missing email", RegisterInput{Name: "Ayşe", Password: "secret1", Role: models.RoleCustomer, KVKKConsent: acceptedConsent()}},
		{"short password", RegisterInput{Name: "Ayşe", Email: "a@example.com", Password: "abc", Role: models.RoleCustomer, KVKKConsent: acceptedConsent()}},
		{"admin role", RegisterInput{Name: "Ayşe", Email: "a@example.com", Password: "secret1", Role: models.RoleAdmin, KVKKConsent: acceptedConsent()}},
		{"no consent", RegisterInput{Name: "Ayşe", Email: "a@example.com", Password: "secret1", Role: models.RoleCustomer}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			assert.Equal(t, utils.KindValidation, utils.KindOf(err))
		})
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	repo := newMemUsers()
	svc := &DefaultUserService{Repo: repo}

	created, err := svc.Register(context.Background(), RegisterInput{
		Name:        "  Mehmet Usta ",
		Email:       " Mehmet@Example.COM ",
		Password:    "secret1",
		Role:        models.RoleProvider,
		KVKKConsent: acceptedConsent(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Mehmet Usta", created.Name)
	assert.Equal(t, "mehmet@example.com", created.Email)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, created.ID)

	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newMemUsers()
	svc := &DefaultUserService{Repo: repo}
	ctx := context.Background()

	in := RegisterInput{
		Name:        "Ayşe",
		Email:       "ayse@example.com",
		Password:    "secret1",
		Role:        models.RoleCustomer,
		KVKKConsent: acceptedConsent(),
	}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	// Same address with different casing still collides.
	in.Email = "AYSE@example.com"
	_, err = svc.Register(ctx, in)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestUpdateProfileWhitelist(t *testing.T) {
	repo := newMemUsers()
	repo.users["u1"] = &models.User{ID: "u1", Name: "Ayşe", IsActive: true}
	svc := &DefaultUserService{Repo: repo}
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "u1", map[string]interface{}{})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.UpdateProfile(ctx, "u1", map[string]interface{}{"stats.totalEarnings": 99999})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.UpdateProfile(ctx, "u1", map[string]interface{}{"passwordHash": "x"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.UpdateProfile(ctx, "u1", map[string]interface{}{
		"name":             "Ayşe Yılmaz",
		"providerInfo.bio": "20 yıllık tecrübe",
	})
	require.NoError(t, err)

	writes := repo.updates["u1"]
	require.Len(t, writes, 1)
	assert.Equal(t, "Ayşe Yılmaz", writes[0]["name"])
	assert.Contains(t, writes[0], "updatedAt")
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc := &DefaultUserService{Repo: newMemUsers()}

	_, err := svc.GetUserByID(context.Background(), "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
