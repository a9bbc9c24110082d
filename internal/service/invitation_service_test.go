package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvitationRepo struct {
	byToken map[string]*model.TestInvitation
}

func (r *fakeInvitationRepo) Create(_ context.Context, inv *model.TestInvitation) error {
	inv.ID = uint(len(r.byToken)) + 1
	r.byToken[inv.Token] = inv
	return nil
}

func (r *fakeInvitationRepo) FindByToken(_ context.Context, token string) (*model.TestInvitation, error) {
	inv, ok := r.byToken[token]
	if !ok {
		return nil, fmt.Errorf("invitation %s: %w", token, common.ErrNotFound)
	}
	return inv, nil
}

func newInvitationServiceForTest() (InvitationService, *fakeInvitationRepo) {
	repo := &fakeInvitationRepo{byToken: make(map[string]*model.TestInvitation)}
	cfg := &config.Config{}
	cfg.Server.PublicURL = "https://assess.example.com/"
	return NewInvitationService(repo, newFakeTestRepo(sampleTest()), cfg), repo
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestInvitation_CreateAndResolve(t *testing.T) {
	svc, _ := newInvitationServiceForTest()
	ctx := context.Background()
	hr := Actor{UserID: 2, Roles: []string{model.RoleHR}}

	created, err := svc.Create(ctx, 1, dto.InvitationCreateDTO{Email: " Jane@Example.com "}, hr)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, "https://assess.example.com/invite/"+created.Token, created.Link)
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), created.ExpiresAt, time.Minute)

	png, err := base64.StdEncoding.DecodeString(created.QRCodePNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	resolved, err := svc.Resolve(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resolved.TestID)
	assert.Equal(t, "Go basics", resolved.TestTitle)
	assert.Empty(t, resolved.QRCodePNG)

	qr, err := svc.QRCode(ctx, created.Token)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(qr, pngMagic))
}

func TestInvitation_CustomTTL(t *testing.T) {
	svc, _ := newInvitationServiceForTest()
	created, err := svc.Create(context.Background(), 1, dto.InvitationCreateDTO{ExpiresInHours: 2}, Actor{UserID: 2})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), created.ExpiresAt, time.Minute)
}

func TestInvitation_NotFoundCases(t *testing.T) {
	svc, repo := newInvitationServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, dto.InvitationCreateDTO{}, Actor{UserID: 2})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.Resolve(ctx, "8f14e45f-ceea-4e7a-9c3b-1a2b3c4d5e6f")
	assert.ErrorIs(t, err, common.ErrNotFound)

	created, err := svc.Create(ctx, 1, dto.InvitationCreateDTO{}, Actor{UserID: 2})
	require.NoError(t, err)
	repo.byToken[created.Token].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = svc.Resolve(ctx, created.Token)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.QRCode(ctx, created.Token)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
