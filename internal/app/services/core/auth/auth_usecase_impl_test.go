package auth

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts/mocks"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestAuthUsecase() (*authUsecase, *mocks.UserRepository, *mocks.SessionService) {
	users := new(mocks.UserRepository)
	sessions := new(mocks.SessionService)
	uc := &authUsecase{
		UserRepository: users,
		SessionService: sessions,
		InternalConfig: &config.InternalConfig{JWT: config.AppJWT{Secret: testSecret, ExpTimeInHour: 24}},
		Log:            zap.NewNop(),
		Now:            func() time.Time { return time.Date(2024, 3, 9, 7, 0, 0, 0, time.UTC) },
	}
	return uc, users, sessions
}

func TestRegister(t *testing.T) {
	uc, users, _ := newTestAuthUsecase()
	userID := primitive.NewObjectID()

	users.On("FindByEmail", mock.Anything, "nurse@clinic.test").Return(nil, nil)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "nurse@clinic.test" &&
			u.Role == constvars.RoleNurse &&
			u.Password != "Secret123" &&
			utils.CheckPasswordHash("Secret123", u.Password)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = userID
	}).Return(userID.Hex(), nil)

	profile, err := uc.Register(context.Background(), &requests.RegisterUser{
		Name:     "Grace",
		Email:    "Nurse@Clinic.test",
		Password: "Secret123",
		Role:     constvars.RoleNurse,
	})

	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), profile.ID)
	assert.Equal(t, "nurse@clinic.test", profile.Email)
	users.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, users, _ := newTestAuthUsecase()

	users.On("FindByEmail", mock.Anything, "nurse@clinic.test").Return(&models.User{}, nil)

	_, err := uc.Register(context.Background(), &requests.RegisterUser{Email: "nurse@clinic.test", Password: "Secret123"})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLoginAndResolveCaller(t *testing.T) {
	uc, users, sessions := newTestAuthUsecase()
	hashed, err := utils.HashPassword("Secret123")
	require.NoError(t, err)
	user := &models.User{ID: primitive.NewObjectID(), Email: "doc@clinic.test", Password: hashed, Role: constvars.RoleDoctor}
	session := &models.Session{SessionID: "sess-1", UserID: user.ID.Hex(), Role: constvars.RoleDoctor}

	users.On("FindByEmail", mock.Anything, "doc@clinic.test").Return(user, nil)
	sessions.On("CreateSession", mock.Anything, user.ID.Hex(), constvars.RoleDoctor, 24*time.Hour).Return(session, nil)
	sessions.On("GetSession", mock.Anything, "sess-1").Return(session, nil)

	login, err := uc.Login(context.Background(), &requests.LoginUser{Email: "doc@clinic.test", Password: "Secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, constvars.RoleDoctor, login.User.Role)

	caller, err := uc.ResolveCaller(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), caller.UserID)
	assert.Equal(t, constvars.RoleDoctor, caller.Role)
	assert.Equal(t, "sess-1", caller.SessionID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, users, sessions := newTestAuthUsecase()
	hashed, err := utils.HashPassword("Secret123")
	require.NoError(t, err)

	users.On("FindByEmail", mock.Anything, "doc@clinic.test").Return(&models.User{Password: hashed}, nil)

	_, err = uc.Login(context.Background(), &requests.LoginUser{Email: "doc@clinic.test", Password: "wrong"})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
	sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, users, _ := newTestAuthUsecase()

	users.On("FindByEmail", mock.Anything, "ghost@clinic.test").Return(nil, nil)

	_, err := uc.Login(context.Background(), &requests.LoginUser{Email: "ghost@clinic.test", Password: "whatever"})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
}

func TestResolveCaller_Rejects(t *testing.T) {
	uc, _, sessions := newTestAuthUsecase()

	_, err := uc.ResolveCaller(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))

	_, err = uc.ResolveCaller(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))

	forged, err := utils.GenerateSessionJWT("sess-1", "other-secret", 1)
	require.NoError(t, err)
	_, err = uc.ResolveCaller(context.Background(), forged)
	require.Error(t, err)

	sessions.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
}

func TestResolveCaller_ExpiredSession(t *testing.T) {
	uc, _, sessions := newTestAuthUsecase()
	token, err := utils.GenerateSessionJWT("sess-gone", testSecret, 1)
	require.NoError(t, err)

	sessions.On("GetSession", mock.Anything, "sess-gone").Return(nil, exceptions.ErrSessionNotFound(nil))

	_, err = uc.ResolveCaller(context.Background(), token)

	require.Error(t, err)
	assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
}

func TestLogout(t *testing.T) {
	uc, _, sessions := newTestAuthUsecase()

	sessions.On("DeleteSession", mock.Anything, "sess-1").Return(nil)

	require.NoError(t, uc.Logout(context.Background(), "sess-1"))
	sessions.AssertExpectations(t)
}

func TestGetProfile(t *testing.T) {
	uc, users, _ := newTestAuthUsecase()
	user := &models.User{ID: primitive.NewObjectID(), Name: "Grace", Role: constvars.RoleNurse}

	users.On("FindByID", mock.Anything, user.ID.Hex()).Return(user, nil)

	profile, err := uc.GetProfile(context.Background(), user.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, "Grace", profile.Name)
}
