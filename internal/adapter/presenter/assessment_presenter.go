package presenter

import (
	assessmentDto "github.com/johnquangdev/interview-coach/internal/adapter/dto/assessment"
	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	assessmentUsecase "github.com/johnquangdev/interview-coach/internal/usecase/assessment"
)

// ToSubscoresResponse converts subscores to their DTO
func ToSubscoresResponse(s entities.Subscores) assessmentDto.SubscoresResponse {
	return assessmentDto.SubscoresResponse{
		Fluency:           s.Fluency,
		ClarityStructure:  s.ClarityStructure,
		GrammarVocabulary: s.GrammarVocabulary,
		Pronunciation:     s.Pronunciation,
		ToneConfidence:    s.ToneConfidence,
		QuestionRelevance: s.QuestionRelevance,
	}
}

// ToAssessmentResponse converts a CommunicationAssessment entity to AssessmentResponse DTO
func ToAssessmentResponse(a *entities.CommunicationAssessment) *assessmentDto.AssessmentResponse {
	if a == nil {
		return nil
	}

	return &assessmentDto.AssessmentResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		InterviewID:      a.InterviewID,
		QuestionID:       a.QuestionID,
		QuestionText:     a.QuestionText,
		AssessmentType:   string(a.AssessmentType),
		Status:           string(a.Status),
		OverallScore:     a.OverallScore,
		ScoreLevel:       string(a.ScoreLevel),
		Subscores:        ToSubscoresResponse(a.Subscores),
		Strengths:        nonNil(a.Strengths),
		Improvements:     nonNil(a.Improvements),
		SummaryComment:   a.SummaryComment,
		EvaluationSource: string(a.EvaluationSource),
		Provider:         a.Provider,
		ProcessingTimeMs: a.ProcessingTimeMs,
		ErrorMessage:     a.ErrorMessage,
		CompletedAt:      a.CompletedAt,
		CreatedAt:        a.CreatedAt,
	}
}

// ToAssessmentResponses converts a list of assessments
func ToAssessmentResponses(list []*entities.CommunicationAssessment) []*assessmentDto.AssessmentResponse {
	out := make([]*assessmentDto.AssessmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAssessmentResponse(a))
	}
	return out
}

// ToBatchAssessResponse converts a batch result to its DTO
func ToBatchAssessResponse(r *assessmentUsecase.BatchResult) *assessmentDto.BatchAssessResponse {
	if r == nil {
		return nil
	}
	return &assessmentDto.BatchAssessResponse{
		Assessments: ToAssessmentResponses(r.Assessments),
		Skipped:     nonNil(r.Skipped),
		Summary: assessmentDto.BatchSummaryResponse{
			AverageScore:     r.Summary.AverageScore,
			AverageSubscores: ToSubscoresResponse(r.Summary.AverageSubscores),
			TotalResponses:   r.Summary.TotalResponses,
			TopStrengths:     nonNil(r.Summary.TopStrengths),
			TopImprovements:  nonNil(r.Summary.TopImprovements),
			OverallFeedback:  r.Summary.OverallFeedback,
		},
	}
}

// ToAveragesResponse converts user averages to their DTO
func ToAveragesResponse(a *assessmentUsecase.UserAverages) *assessmentDto.AveragesResponse {
	if a == nil {
		return nil
	}
	return &assessmentDto.AveragesResponse{
		UserID:           a.UserID,
		HasData:          a.HasData,
		TotalAssessments: a.TotalAssessments,
		AverageOverall:   a.AverageOverall,
		Averages:         ToSubscoresResponse(a.Averages),
		Strongest:        string(a.Strongest),
		Weakest:          string(a.Weakest),
	}
}

// ToTrendsResponse converts trend points to their DTO
func ToTrendsResponse(userID string, days int, points []assessmentUsecase.TrendPoint) *assessmentDto.TrendsResponse {
	out := make([]assessmentDto.TrendPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, assessmentDto.TrendPointResponse{
			Date:        p.Date,
			Count:       p.Count,
			MeanOverall: p.MeanOverall,
		})
	}
	return &assessmentDto.TrendsResponse{UserID: userID, Days: days, Points: out}
}

// ToAssessmentRequest maps a request DTO to the usecase request
func ToAssessmentRequest(req *assessmentDto.AssessRequest) *entities.AssessmentRequest {
	return &entities.AssessmentRequest{
		UserID:         req.UserID,
		InterviewID:    req.InterviewID,
		QuestionID:     req.QuestionID,
		QuestionText:   req.QuestionText,
		Transcript:     req.Transcript,
		AudioFeatures:  toAudioFeatures(req.AudioFeatures),
		AssessmentType: entities.AssessmentType(req.AssessmentType),
	}
}

// ToBatchRequests maps every batch item to a usecase request sharing the batch's user and interview
func ToBatchRequests(req *assessmentDto.BatchAssessRequest) []*entities.AssessmentRequest {
	assessmentType := entities.AssessmentType(req.AssessmentType)
	if assessmentType == "" {
		assessmentType = entities.AssessmentTypeInterview
	}
	out := make([]*entities.AssessmentRequest, 0, len(req.Responses))
	for _, item := range req.Responses {
		out = append(out, &entities.AssessmentRequest{
			UserID:         req.UserID,
			InterviewID:    req.InterviewID,
			QuestionID:     item.QuestionID,
			QuestionText:   item.QuestionText,
			Transcript:     item.Transcript,
			AudioFeatures:  toAudioFeatures(item.AudioFeatures),
			AssessmentType: assessmentType,
		})
	}
	return out
}

func toAudioFeatures(a *assessmentDto.AudioFeaturesRequest) *entities.AudioFeatures {
	if a == nil {
		return nil
	}
	return &entities.AudioFeatures{
		SpeakingRate:    a.SpeakingRate,
		PauseDuration:   a.PauseDuration,
		FillerWordCount: a.FillerWordCount,
		TotalDuration:   a.TotalDuration,
		WordCount:       a.WordCount,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
