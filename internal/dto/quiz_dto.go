package dto

import "quiz-admin/internal/domain"

// QuestionInput is a question as submitted by the quiz editor.
type QuestionInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// SaveQuizRequest is the payload for creating or overwriting a quiz.
type SaveQuizRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// ToDomain converts the request into a domain quiz, trimming nothing; the
// domain Validate call decides what is acceptable.
func (r *SaveQuizRequest) ToDomain() *domain.Quiz {
	questions := make([]domain.Question, len(r.Questions))
	for i, q := range r.Questions {
		questions[i] = domain.Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return &domain.Quiz{
		Title:       r.Title,
		Description: r.Description,
		Questions:   questions,
	}
}

// QuizListResponse carries every quiz.
type QuizListResponse struct {
	Quizzes []*domain.Quiz `json:"quizzes"`
}
