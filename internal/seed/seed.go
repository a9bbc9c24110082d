package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document loaded by cmd/seed.
type Fixture struct {
	Users           []UserFixture           `yaml:"users"`
	Specializations []SpecializationFixture `yaml:"specializations"`
	Tests           []TestFixture           `yaml:"tests"`
}

type UserFixture struct {
	Email     string   `yaml:"email"`
	Password  string   `yaml:"password"`
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
	Roles     []string `yaml:"roles"`
}

type SpecializationFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type TestFixture struct {
	Title           string            `yaml:"title"`
	Description     string            `yaml:"description"`
	Duration        int               `yaml:"duration"`
	Published       bool              `yaml:"published"`
	Specializations []string          `yaml:"specializations"`
	Questions       []QuestionFixture `yaml:"questions"`
}

type QuestionFixture struct {
	Content string          `yaml:"content"`
	Type    string          `yaml:"type"`
	Score   int             `yaml:"score"`
	Order   int             `yaml:"order"`
	Options []OptionFixture `yaml:"options"`
}

type OptionFixture struct {
	Content string `yaml:"content"`
	Correct bool   `yaml:"correct"`
}

// Load decodes a fixture and rejects unknown keys.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

type userCreator interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type specCatalog interface {
	List(ctx context.Context) ([]dto.SpecializationResponse, error)
	Create(ctx context.Context, req dto.SpecializationRequest) (*dto.SpecializationResponse, error)
}

type testCreator interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO, actor service.Actor) (*dto.TestResponseDTO, error)
}

// Seeder creates fixture data through the service layer so every validation rule applies.
type Seeder struct {
	users    userCreator
	accounts userFinder
	specs    specCatalog
	tests    testCreator
}

func NewSeeder(users service.UserService, accounts repository.UserRepository, specs service.SpecializationService, tests service.AdminTestService) *Seeder {
	return &Seeder{users: users, accounts: accounts, specs: specs, tests: tests}
}

// Summary counts what Apply created. Existing users and specializations are skipped.
type Summary struct {
	Users           int
	Specializations int
	Tests           int
}

// Apply creates the fixture. The first admin or hr user listed, new or already
// present, authors the tests.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary
	var author service.Actor

	for _, u := range f.Users {
		created, err := s.users.Create(ctx, dto.CreateUserRequest{
			Email:     u.Email,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Consent:   true,
			Roles:     u.Roles,
		})
		if errors.Is(err, common.ErrConflict) {
			log.Info().Str("email", u.Email).Msg("seed: user exists, skipping")
			if author.UserID == 0 {
				if author, err = s.existingAuthor(ctx, u.Email); err != nil {
					return sum, fmt.Errorf("user %s: %w", u.Email, err)
				}
			}
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("user %s: %w", u.Email, err)
		}
		sum.Users++
		if author.UserID == 0 && containsRole(created.Roles, model.RoleAdmin, model.RoleHR) {
			author = service.Actor{UserID: created.ID, Roles: created.Roles}
		}
	}

	for _, sp := range f.Specializations {
		_, err := s.specs.Create(ctx, dto.SpecializationRequest{Name: sp.Name, Description: sp.Description})
		if errors.Is(err, common.ErrConflict) {
			log.Info().Str("name", sp.Name).Msg("seed: specialization exists, skipping")
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("specialization %s: %w", sp.Name, err)
		}
		sum.Specializations++
	}

	if len(f.Tests) == 0 {
		return sum, nil
	}
	if author.UserID == 0 {
		return sum, fmt.Errorf("tests need an admin or hr user as author: %w", common.ErrValidation)
	}

	specIDs, err := s.specializationIDs(ctx)
	if err != nil {
		return sum, err
	}
	for _, t := range f.Tests {
		req, err := t.toRequest(specIDs)
		if err != nil {
			return sum, err
		}
		if _, err := s.tests.CreateTest(ctx, req, author); err != nil {
			return sum, fmt.Errorf("test %q: %w", t.Title, err)
		}
		sum.Tests++
	}
	return sum, nil
}

// existingAuthor returns the stored user as an author when it holds admin or hr,
// and a zero Actor otherwise.
func (s *Seeder) existingAuthor(ctx context.Context, email string) (service.Actor, error) {
	user, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return service.Actor{}, err
	}
	if !user.HasRole(model.RoleAdmin, model.RoleHR) {
		return service.Actor{}, nil
	}
	return service.Actor{UserID: user.ID, Roles: user.RoleNames()}, nil
}

func (s *Seeder) specializationIDs(ctx context.Context) (map[string]uint, error) {
	all, err := s.specs.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(all))
	for _, sp := range all {
		ids[sp.Name] = sp.ID
	}
	return ids, nil
}

func (t TestFixture) toRequest(specIDs map[string]uint) (dto.TestCreateDTO, error) {
	req := dto.TestCreateDTO{
		Title:       t.Title,
		Description: t.Description,
		Duration:    t.Duration,
		IsPublished: t.Published,
	}
	for _, name := range t.Specializations {
		id, ok := specIDs[name]
		if !ok {
			return req, fmt.Errorf("test %q references unknown specialization %q: %w", t.Title, name, common.ErrNotFound)
		}
		req.SpecializationIDs = append(req.SpecializationIDs, id)
	}
	for _, q := range t.Questions {
		qDto := dto.QuestionCreateDTO{
			Content:     q.Content,
			Type:        q.Type,
			Score:       q.Score,
			OrderInTest: q.Order,
		}
		for _, o := range q.Options {
			qDto.Options = append(qDto.Options, dto.AnswerOptionCreateDTO{Content: o.Content, IsCorrect: o.Correct})
		}
		req.Questions = append(req.Questions, qDto)
	}
	return req, nil
}

func containsRole(have []string, want ...string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
