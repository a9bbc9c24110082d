package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const (
	defaultInvitationTTL = 72 * time.Hour
	qrCodeSize           = 256
)

type InvitationService interface {
	Create(ctx context.Context, testID uint, req dto.InvitationCreateDTO, actor Actor) (*dto.InvitationResponseDTO, error)
	Resolve(ctx context.Context, token string) (*dto.InvitationResponseDTO, error)
	QRCode(ctx context.Context, token string) ([]byte, error)
}

type invitationService struct {
	repo      repository.InvitationRepository
	testRepo  repository.TestRepository
	publicURL string
}

func NewInvitationService(repo repository.InvitationRepository, testRepo repository.TestRepository, cfg *config.Config) InvitationService {
	return &invitationService{
		repo:      repo,
		testRepo:  testRepo,
		publicURL: strings.TrimRight(cfg.Server.PublicURL, "/"),
	}
}

func (s *invitationService) Create(ctx context.Context, testID uint, req dto.InvitationCreateDTO, actor Actor) (*dto.InvitationResponseDTO, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	ttl := defaultInvitationTTL
	if req.ExpiresInHours > 0 {
		ttl = time.Duration(req.ExpiresInHours) * time.Hour
	}
	invitation := model.TestInvitation{
		Token:       uuid.NewString(),
		TestID:      test.ID,
		Test:        *test,
		CreatedByID: actor.UserID,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		ExpiresAt:   time.Now().Add(ttl),
	}
	if err := s.repo.Create(ctx, &invitation); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to create invitation")
		return nil, err
	}

	resp := s.toResponse(&invitation)
	png, err := qrcode.Encode(resp.Link, qrcode.Medium, qrCodeSize)
	if err != nil {
		log.Warn().Err(err).Str("token", invitation.Token).Msg("Failed to render invitation QR code")
	} else {
		resp.QRCodePNG = base64.StdEncoding.EncodeToString(png)
	}
	log.Info().Str("token", invitation.Token).Uint("testID", testID).Time("expiresAt", invitation.ExpiresAt).Msg("Invitation created")
	return &resp, nil
}

// Resolve returns the invitation behind a token. Expired tokens are reported as not found.
func (s *invitationService) Resolve(ctx context.Context, token string) (*dto.InvitationResponseDTO, error) {
	invitation, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(invitation)
	return &resp, nil
}

func (s *invitationService) QRCode(ctx context.Context, token string) ([]byte, error) {
	invitation, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.link(invitation.Token), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

func (s *invitationService) find(ctx context.Context, token string) (*model.TestInvitation, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("invitation %q: %w", token, common.ErrNotFound)
	}
	invitation, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation.Expired(time.Now()) {
		return nil, fmt.Errorf("invitation %s expired: %w", token, common.ErrNotFound)
	}
	return invitation, nil
}

func (s *invitationService) link(token string) string {
	return s.publicURL + "/invite/" + token
}

func (s *invitationService) toResponse(inv *model.TestInvitation) dto.InvitationResponseDTO {
	return dto.InvitationResponseDTO{
		Token:     inv.Token,
		TestID:    inv.TestID,
		TestTitle: inv.Test.Title,
		Email:     inv.Email,
		Link:      s.link(inv.Token),
		ExpiresAt: inv.ExpiresAt,
	}
}
