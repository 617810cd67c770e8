package assessment

// AudioFeaturesRequest is the optional numeric summary of the spoken answer
type AudioFeaturesRequest struct {
	SpeakingRate    *float64 `json:"speaking_rate,omitempty" validate:"omitempty,gte=0"`
	PauseDuration   *float64 `json:"pause_duration,omitempty" validate:"omitempty,gte=0"`
	FillerWordCount *int     `json:"filler_word_count,omitempty" validate:"omitempty,gte=0"`
	TotalDuration   *float64 `json:"total_duration,omitempty" validate:"omitempty,gte=0"`
	WordCount       *int     `json:"word_count,omitempty" validate:"omitempty,gte=0"`
}

// AssessRequest represents the request to assess one transcript
type AssessRequest struct {
	UserID         string                `json:"user_id" validate:"required,max=64"`
	InterviewID    *string               `json:"interview_id,omitempty" validate:"omitempty,max=64"`
	QuestionID     string                `json:"question_id" validate:"required,max=64"`
	QuestionText   string                `json:"question_text" validate:"max=2000"`
	Transcript     string                `json:"transcript" validate:"required,transcript"`
	AudioFeatures  *AudioFeaturesRequest `json:"audio_features,omitempty"`
	AssessmentType string                `json:"assessment_type,omitempty" validate:"omitempty,oneof=practice interview mock_interview"`
}

// BatchResponseItem is one answered question of an interview
type BatchResponseItem struct {
	QuestionID    string                `json:"question_id" validate:"required,max=64"`
	QuestionText  string                `json:"question_text" validate:"max=2000"`
	Transcript    string                `json:"transcript"`
	AudioFeatures *AudioFeaturesRequest `json:"audio_features,omitempty"`
}

// BatchAssessRequest represents the request to assess all responses of an interview.
// Short transcripts are skipped, not rejected.
type BatchAssessRequest struct {
	UserID         string              `json:"user_id" validate:"required,max=64"`
	InterviewID    *string             `json:"interview_id,omitempty" validate:"omitempty,max=64"`
	AssessmentType string              `json:"assessment_type,omitempty" validate:"omitempty,oneof=practice interview mock_interview"`
	Responses      []BatchResponseItem `json:"responses" validate:"required,min=1,max=50,dive"`
}

// HistoryQuery represents query parameters for a user's history
type HistoryQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// TrendsQuery represents query parameters for improvement trends
type TrendsQuery struct {
	Days int `query:"days" validate:"omitempty,min=1,max=365"`
}
