package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"gorm.io/gorm"
)

type fakeTestRepo struct {
	mu     sync.Mutex
	tests  map[uint]*model.Test
	nextID uint
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	r := &fakeTestRepo{tests: make(map[uint]*model.Test)}
	for _, t := range tests {
		r.tests[t.ID] = t
		if t.ID > r.nextID {
			r.nextID = t.ID
		}
	}
	return r
}

func (r *fakeTestRepo) Create(_ context.Context, test *model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	test.ID = r.nextID
	for i := range test.Questions {
		test.Questions[i].ID = test.ID*100 + uint(i) + 1
		test.Questions[i].TestID = test.ID
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) Update(_ context.Context, test *model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *test
	r.tests[test.ID] = &stored
	return nil
}

func (r *fakeTestRepo) UpdateWithSpecializations(_ context.Context, test *model.Test, specs []model.Specialization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	test.Specializations = specs
	stored := *test
	r.tests[test.ID] = &stored
	return nil
}

func (r *fakeTestRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tests[id]; !ok {
		return fmt.Errorf("test %d: %w", id, common.ErrNotFound)
	}
	delete(r.tests, id)
	return nil
}

func (r *fakeTestRepo) FindByID(_ context.Context, id uint) (*model.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tests[id]
	if !ok {
		return nil, fmt.Errorf("test %d: %w", id, common.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeTestRepo) FindAllWithQuestionCount(_ context.Context, publishedOnly bool) ([]repository.TestWithQuestionCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.TestWithQuestionCount
	for _, t := range r.tests {
		if publishedOnly && !t.IsPublished {
			continue
		}
		out = append(out, repository.TestWithQuestionCount{Test: *t, QuestionCount: len(t.Questions)})
	}
	return out, nil
}

type fakeAttemptRepo struct {
	mu       sync.Mutex
	attempts map[uint]*model.TestAttempt
	nextID   uint
	creates  int
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: make(map[uint]*model.TestAttempt)}
}

func (r *fakeAttemptRepo) Create(_ context.Context, attempt *model.TestAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.TestID == attempt.TestID && a.UserID == attempt.UserID && a.Status == model.AttemptInProgress {
			return fmt.Errorf("duplicate in-progress attempt: %w", gorm.ErrDuplicatedKey)
		}
	}
	r.nextID++
	r.creates++
	attempt.ID = r.nextID
	stored := *attempt
	r.attempts[attempt.ID] = &stored
	return nil
}

func (r *fakeAttemptRepo) Complete(_ context.Context, attempt *model.TestAttempt, answers []model.UserAnswer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.attempts[attempt.ID]
	if !ok || stored.Status != model.AttemptInProgress {
		return fmt.Errorf("attempt %d is no longer in progress: %w", attempt.ID, common.ErrConflict)
	}
	for i := range answers {
		answers[i].ID = uint(i) + 1
		answers[i].TestAttemptID = attempt.ID
	}
	stored.Status = model.AttemptCompleted
	stored.EndTime = attempt.EndTime
	stored.Score = attempt.Score
	stored.Answers = answers
	return nil
}

func (r *fakeAttemptRepo) FindByID(_ context.Context, id uint) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok {
		return nil, fmt.Errorf("test attempt %d: %w", id, common.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttemptRepo) FindByIDWithDetails(ctx context.Context, id uint) (*model.TestAttempt, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeAttemptRepo) FindInProgress(_ context.Context, testID, userID uint) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.TestID == testID && a.UserID == userID && a.Status == model.AttemptInProgress {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("in-progress attempt: %w", common.ErrNotFound)
}

func (r *fakeAttemptRepo) FindAllByTestAndUser(_ context.Context, testID *uint, userID uint) ([]model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range r.attempts {
		if a.UserID == userID && (testID == nil || a.TestID == *testID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) List(_ context.Context, filter repository.AttemptFilter, offset, limit int) ([]model.TestAttempt, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range r.attempts {
		if filter.TestID != nil && a.TestID != *filter.TestID {
			continue
		}
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

type fakeSpecRepo struct {
	specs map[uint]*model.Specialization
}

func newFakeSpecRepo(specs ...model.Specialization) *fakeSpecRepo {
	r := &fakeSpecRepo{specs: make(map[uint]*model.Specialization)}
	for i := range specs {
		r.specs[specs[i].ID] = &specs[i]
	}
	return r
}

func (r *fakeSpecRepo) Create(_ context.Context, spec *model.Specialization) error {
	for _, s := range r.specs {
		if s.Name == spec.Name || s.Slug == spec.Slug {
			return fmt.Errorf("insert specialization: %w", gorm.ErrDuplicatedKey)
		}
	}
	spec.ID = uint(len(r.specs)) + 1
	r.specs[spec.ID] = spec
	return nil
}

func (r *fakeSpecRepo) Update(_ context.Context, spec *model.Specialization) error {
	r.specs[spec.ID] = spec
	return nil
}

func (r *fakeSpecRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.specs[id]; !ok {
		return fmt.Errorf("specialization %d: %w", id, common.ErrNotFound)
	}
	delete(r.specs, id)
	return nil
}

func (r *fakeSpecRepo) FindByID(_ context.Context, id uint) (*model.Specialization, error) {
	s, ok := r.specs[id]
	if !ok {
		return nil, fmt.Errorf("specialization %d: %w", id, common.ErrNotFound)
	}
	return s, nil
}

func (r *fakeSpecRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.Specialization, error) {
	out := make([]model.Specialization, 0, len(ids))
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSpecRepo) FindAll(_ context.Context) ([]model.Specialization, error) {
	out := make([]model.Specialization, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, *s)
	}
	return out, nil
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*model.User)}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("insert user: %w", gorm.ErrDuplicatedKey)
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User, roles []model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if roles != nil {
		user.Roles = roles
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, common.ErrNotFound)
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if filter.Role != "" && !u.HasRole(filter.Role) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

type fakeRoleRepo struct{}

func (fakeRoleRepo) FindByNames(_ context.Context, names []string) ([]model.Role, error) {
	roles := make([]model.Role, 0, len(names))
	for _, n := range names {
		id := 0
		for i, known := range model.RoleNames {
			if known == n {
				id = i + 1
			}
		}
		if id == 0 {
			return nil, fmt.Errorf("unknown role in %v: %w", names, common.ErrValidation)
		}
		roles = append(roles, model.Role{ID: uint(id), Name: n})
	}
	return roles, nil
}

type fakeProfileRepo struct {
	profiles map[uint]*model.Profile
	saves    int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uint]*model.Profile)}
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uint) (*model.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile for user %d: %w", userID, common.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *model.Profile) error {
	r.saves++
	if profile.ID == 0 {
		profile.ID = uint(len(r.profiles)) + 1
	}
	stored := *profile
	r.profiles[profile.UserID] = &stored
	return nil
}

type fakeMaterialRepo struct {
	materials []model.LearningMaterial
}

func (r *fakeMaterialRepo) Create(_ context.Context, material *model.LearningMaterial) error {
	material.ID = uint(len(r.materials)) + 1
	r.materials = append(r.materials, *material)
	return nil
}

func (r *fakeMaterialRepo) Update(_ context.Context, material *model.LearningMaterial) error {
	for i := range r.materials {
		if r.materials[i].ID == material.ID {
			r.materials[i] = *material
			return nil
		}
	}
	return fmt.Errorf("learning material %d: %w", material.ID, common.ErrNotFound)
}

func (r *fakeMaterialRepo) Delete(_ context.Context, id uint) error {
	for i := range r.materials {
		if r.materials[i].ID == id {
			r.materials = append(r.materials[:i], r.materials[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("learning material %d: %w", id, common.ErrNotFound)
}

func (r *fakeMaterialRepo) FindByID(_ context.Context, id uint) (*model.LearningMaterial, error) {
	for i := range r.materials {
		if r.materials[i].ID == id {
			cp := r.materials[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("learning material %d: %w", id, common.ErrNotFound)
}

func (r *fakeMaterialRepo) List(_ context.Context, filter repository.MaterialFilter, offset, limit int) ([]model.LearningMaterial, int64, error) {
	out := make([]model.LearningMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		if filter.PublishedOnly && !m.IsPublished {
			continue
		}
		if filter.SpecializationID != nil && (m.SpecializationID == nil || *m.SpecializationID != *filter.SpecializationID) {
			continue
		}
		out = append(out, m)
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}
