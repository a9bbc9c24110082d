package service

import (
	"sort"

	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/jinzhu/copier"
)

func toSpecializationResponse(spec *model.Specialization) dto.SpecializationResponse {
	var resp dto.SpecializationResponse
	copier.Copy(&resp, spec)
	return resp
}

func toSpecializationResponses(specs []model.Specialization) []dto.SpecializationResponse {
	resp := make([]dto.SpecializationResponse, 0, len(specs))
	for i := range specs {
		resp = append(resp, toSpecializationResponse(&specs[i]))
	}
	return resp
}

func toProfileResponse(p *model.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Phone:            p.Phone,
		Location:         p.Location,
		Bio:              p.Bio,
		Experience:       p.Experience,
		Education:        p.Education,
		SpecializationID: p.SpecializationID,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Specialization != nil {
		spec := toSpecializationResponse(p.Specialization)
		resp.Specialization = &spec
	}
	return resp
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Consent:   u.Consent,
		Roles:     u.RoleNames(),
		Profile:   toProfileResponse(u.Profile),
		CreatedAt: u.CreatedAt,
	}
}

// toTestResponse maps a test with its questions. withAnswers exposes which options are correct.
func toTestResponse(t *model.Test, withAnswers bool) dto.TestResponseDTO {
	resp := dto.TestResponseDTO{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Duration:        t.Duration,
		IsPublished:     t.IsPublished,
		CreatedByID:     t.CreatedByID,
		Specializations: toSpecializationResponses(t.Specializations),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	resp.Questions = make([]dto.QuestionResponseDTO, 0, len(t.Questions))
	for i := range t.Questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(&t.Questions[i], withAnswers))
	}
	return resp
}

func toQuestionResponse(q *model.Question, withAnswers bool) dto.QuestionResponseDTO {
	resp := dto.QuestionResponseDTO{
		ID:          q.ID,
		TestID:      q.TestID,
		Content:     q.Content,
		Type:        string(q.Type),
		Score:       q.Score,
		OrderInTest: q.OrderInTest,
	}
	for _, o := range q.Options {
		opt := dto.AnswerOptionResponseDTO{ID: o.ID, Content: o.Content}
		if withAnswers {
			isCorrect := o.IsCorrect
			opt.IsCorrect = &isCorrect
		}
		resp.Options = append(resp.Options, opt)
	}
	return resp
}

func toAttemptSummary(a *model.TestAttempt) dto.TestAttemptSummaryDTO {
	return dto.TestAttemptSummaryDTO{
		ID:        a.ID,
		TestID:    a.TestID,
		TestTitle: a.Test.Title,
		UserID:    a.UserID,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    string(a.Status),
		Score:     a.Score,
	}
}

// toAttemptDetail maps an attempt and its answers, ordered like the questions of the test.
func toAttemptDetail(a *model.TestAttempt, test *model.Test) dto.TestAttemptDetailDTO {
	resp := dto.TestAttemptDetailDTO{
		ID:        a.ID,
		TestID:    a.TestID,
		UserID:    a.UserID,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    string(a.Status),
		Score:     a.Score,
	}
	if test == nil {
		test = &a.Test
	}
	resp.TestTitle = test.Title

	questionMap := make(map[uint]*model.Question, len(test.Questions))
	for i := range test.Questions {
		questionMap[test.Questions[i].ID] = &test.Questions[i]
	}

	answers := make([]model.UserAnswer, len(a.Answers))
	copy(answers, a.Answers)
	sort.SliceStable(answers, func(i, j int) bool {
		qi, okI := questionMap[answers[i].QuestionID]
		qj, okJ := questionMap[answers[j].QuestionID]
		if !okI || !okJ {
			return false
		}
		return qi.OrderInTest < qj.OrderInTest
	})

	resp.Answers = make([]dto.AnswerResponseDTO, 0, len(answers))
	for _, ans := range answers {
		item := dto.AnswerResponseDTO{
			ID:                ans.ID,
			QuestionID:        ans.QuestionID,
			SelectedOptionID:  ans.SelectedOptionID,
			SelectedOptionIDs: []uint(ans.SelectedOptionIDs),
			TextAnswer:        ans.TextAnswer,
			IsCorrect:         ans.IsCorrect,
			ScoreAwarded:      ans.ScoreAwarded,
		}
		if q, ok := questionMap[ans.QuestionID]; ok {
			item.QuestionContent = q.Content
			item.QuestionType = string(q.Type)
			item.MaxScore = q.Score
		}
		resp.Answers = append(resp.Answers, item)
	}
	return resp
}

func toMaterialResponse(m *model.LearningMaterial) dto.LearningMaterialResponse {
	resp := dto.LearningMaterialResponse{
		ID:               m.ID,
		Title:            m.Title,
		Content:          m.Content,
		SpecializationID: m.SpecializationID,
		IsPublished:      m.IsPublished,
		CreatedByID:      m.CreatedByID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Specialization != nil {
		spec := toSpecializationResponse(m.Specialization)
		resp.Specialization = &spec
	}
	return resp
}
