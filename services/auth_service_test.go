package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/services"
)

// --- Mock user repository ---

type mockUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	u, ok := m.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := updates["username"].(string); ok {
		u.Username = v
	}
	if v, ok := updates["email"].(string); ok {
		u.Email = v
	}
	if v, ok := updates["policeId"].(string); ok {
		u.PoliceID = v
	}
	return nil
}

// --- Helpers ---

func newAuthService(repo *mockUserRepo) *services.AuthService {
	logger, _ := zap.NewDevelopment()
	return services.NewAuthService(repo, "test-secret", logger)
}

func signupReq() *models.SignupRequest {
	return &models.SignupRequest{
		Username: "raipursp",
		Email:    "sp@cgpolice.gov.in",
		PoliceID: "CG07X9999",
		Password: "S3cure!Pass",
	}
}

// --- Tests ---

func TestSignup_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	user, svcErr := svc.Signup(context.Background(), signupReq())

	assert.Nil(t, svcErr)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "S3cure!Pass", user.Password, "password must be stored hashed")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)
	_, svcErr := svc.Signup(context.Background(), signupReq())
	assert.Nil(t, svcErr)

	req := signupReq()
	req.Username = "other"
	_, svcErr = svc.Signup(context.Background(), req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)
	_, svcErr := svc.Signup(context.Background(), signupReq())
	assert.Nil(t, svcErr)

	resp, svcErr := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "sp@cgpolice.gov.in",
		Password: "S3cure!Pass",
	})

	assert.Nil(t, svcErr)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "raipursp", resp.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)
	_, svcErr := svc.Signup(context.Background(), signupReq())
	assert.Nil(t, svcErr)

	_, svcErr = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "sp@cgpolice.gov.in",
		Password: "wrong",
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, svcErr := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)
	user, svcErr := svc.Signup(context.Background(), signupReq())
	assert.Nil(t, svcErr)

	svcErr = svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{
		PoliceID: "CG07X0001",
	})
	assert.Nil(t, svcErr)

	got, svcErr := svc.GetProfile(context.Background(), user.ID)
	assert.Nil(t, svcErr)
	assert.Equal(t, "CG07X0001", got.PoliceID)

	svcErr = svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}
