package dto

// SubmitResultRequest is the payload recording a finished quiz attempt.
type SubmitResultRequest struct {
	UserID         string `json:"userId"`
	QuizID         string `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

// ResultWithDetails is a quiz result joined with the quiz title and user
// name for display, plus the rendered percentage and pass classification.
type ResultWithDetails struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	QuizID         string `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	CompletedAt    int64  `json:"completedAt"`
	QuizTitle      string `json:"quizTitle"`
	UserName       string `json:"userName"`
	Percentage     string `json:"percentage"`
	Passed         bool   `json:"passed"`
}

// ResultListResponse carries every result, most recent first.
type ResultListResponse struct {
	Results []ResultWithDetails `json:"results"`
}
