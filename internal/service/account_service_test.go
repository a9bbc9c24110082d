package service

import (
	"context"
	"testing"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(users *fakeUserRepo) AuthService {
	jwt := security.NewJWTManager(&config.Config{JWT: config.JWT{Secret: "test-secret", TokenTTL: time.Hour}})
	return NewAuthService(users, fakeRoleRepo{}, jwt)
}

func registerRequest(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     email,
		Password:  "s3cret-pass",
		FirstName: "Anna",
		LastName:  "Smirnova",
		Consent:   true,
	}
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	resp, err := svc.Register(ctx, registerRequest(" Anna@Example.com "))
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", resp.User.Email)
	assert.Equal(t, []string{model.RoleCandidate}, resp.User.Roles)
	assert.NotEmpty(t, resp.AccessToken)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "anna@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(ctx, registerRequest("anna@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("ANNA@example.com"))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestAuth_RegisterRequiresConsent(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	req := registerRequest("anna@example.com")
	req.Consent = false
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, users.users)
}

func TestAuth_LoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserRepo())
	_, err := svc.Register(ctx, registerRequest("anna@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "anna@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func seededUsers() *fakeUserRepo {
	return newFakeUserRepo(
		model.User{ID: 1, Email: "admin@example.com", Roles: []model.Role{{Name: model.RoleAdmin}}},
		model.User{ID: 2, Email: "hr@example.com", Roles: []model.Role{{Name: model.RoleHR}}},
		model.User{ID: 3, Email: "cand@example.com", Roles: []model.Role{{Name: model.RoleCandidate}}},
		model.User{ID: 4, Email: "emp@example.com", Roles: []model.Role{{Name: model.RoleEmployee}}},
	)
}

func TestUserService_HRSeesCandidatesOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(seededUsers(), fakeRoleRepo{})
	hr := Actor{UserID: 2, Roles: []string{model.RoleHR}}

	list, err := svc.List(ctx, dto.UserListQuery{}, hr)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "cand@example.com", list.Data[0].Email)

	_, err = svc.List(ctx, dto.UserListQuery{Role: model.RoleEmployee}, hr)
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = svc.Get(ctx, 4, hr)
	assert.ErrorIs(t, err, common.ErrForbidden)

	got, err := svc.Get(ctx, 3, hr)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)

	admin := Actor{UserID: 1, Roles: []string{model.RoleAdmin}}
	all, err := svc.List(ctx, dto.UserListQuery{}, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Pagination.Total)
}

func TestUserService_UnknownRole(t *testing.T) {
	ctx := context.Background()
	users := seededUsers()
	svc := NewUserService(users, fakeRoleRepo{})

	_, err := svc.Create(ctx, dto.CreateUserRequest{
		Email: "new@example.com", Password: "s3cret-pass", FirstName: "N", LastName: "U",
		Roles: []string{"superuser"},
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = users.FindByEmail(ctx, "new@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.Update(ctx, 3, dto.UpdateUserRequest{Roles: []string{model.RoleHR, "ghost"}})
	assert.ErrorIs(t, err, common.ErrValidation)
	stored, err := users.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleCandidate}, stored.RoleNames())
}

func TestUserService_CannotDeleteSelf(t *testing.T) {
	ctx := context.Background()
	users := seededUsers()
	svc := NewUserService(users, fakeRoleRepo{})
	admin := Actor{UserID: 1, Roles: []string{model.RoleAdmin}}

	err := svc.Delete(ctx, 1, admin)
	assert.ErrorIs(t, err, common.ErrBadRequest)
	_, err = users.FindByID(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 4, admin))
	_, err = users.FindByID(ctx, 4)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProfile_UnknownSpecialization(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	svc := NewProfileService(profiles, newFakeSpecRepo(model.Specialization{ID: 1, Name: "Backend", Slug: "backend"}))

	_, err := svc.UpdateMine(ctx, 7, dto.UpdateProfileRequest{Phone: strPtr("+7 900"), SpecializationID: uintPtr(99)})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Zero(t, profiles.saves)

	resp, err := svc.UpdateMine(ctx, 7, dto.UpdateProfileRequest{Phone: strPtr("+7 900"), SpecializationID: uintPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "+7 900", resp.Phone)
	require.NotNil(t, resp.SpecializationID)
	assert.Equal(t, uint(1), *resp.SpecializationID)
}

func TestLearningMaterial_TakersSeePublishedOnly(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMaterialRepo{materials: []model.LearningMaterial{
		{ID: 1, Title: "Go basics", IsPublished: true},
		{ID: 2, Title: "Draft", IsPublished: false},
	}}
	svc := NewLearningMaterialService(repo, newFakeSpecRepo())
	candidate := Actor{UserID: 3, Roles: []string{model.RoleCandidate}}
	hr := Actor{UserID: 2, Roles: []string{model.RoleHR}}

	list, err := svc.List(ctx, dto.LearningMaterialQuery{}, candidate)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Go basics", list.Data[0].Title)

	_, err = svc.Get(ctx, 2, candidate)
	assert.ErrorIs(t, err, common.ErrNotFound)

	staff, err := svc.List(ctx, dto.LearningMaterialQuery{}, hr)
	require.NoError(t, err)
	assert.Len(t, staff.Data, 2)

	draft, err := svc.Get(ctx, 2, hr)
	require.NoError(t, err)
	assert.False(t, draft.IsPublished)
}
