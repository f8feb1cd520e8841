package model

// SuggestResponse represents the response for place search
type SuggestResponse struct {
	Results []PlaceSuggestion `json:"results"`
}

// PlaceSuggestion is one entry of the suggestion list as served to clients
type PlaceSuggestion struct {
	Name         string `json:"name"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country"`
	DisplayLabel string `json:"display_label"`
	QueryKey     string `json:"query_key"`
}

// NewPlaceSuggestion derives the client-facing suggestion from a record
func NewPlaceSuggestion(record PlaceRecord) PlaceSuggestion {
	return PlaceSuggestion{
		Name:         record.Name,
		State:        record.State,
		Country:      record.Country,
		DisplayLabel: record.DisplayLabel(),
		QueryKey:     record.QueryKey(),
	}
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// NewUserResponse strips private fields from a user
func NewUserResponse(user *User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
}

// UpdateProfileRequest is the payload for PUT /users/me
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// SecurityQuestionInput is one question/answer pair supplied by the user
type SecurityQuestionInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SetSecurityQuestionsRequest is the payload for PUT /users/me/security-questions
type SetSecurityQuestionsRequest struct {
	Questions []SecurityQuestionInput `json:"questions"`
}

// ForgotPasswordRequest is the payload for POST /auth/forgot/questions
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// SecurityQuestionsResponse lists a user's configured questions with their
// slot indices
type SecurityQuestionsResponse struct {
	Questions []string `json:"questions"`
	Indices   []int    `json:"indices"`
}

// VerifyAnswerRequest is the payload for POST /auth/forgot/verify
type VerifyAnswerRequest struct {
	Email         string `json:"email"`
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

// ResetTokenResponse carries a minted password-reset token
type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
}

// ResetPasswordRequest is the payload for POST /auth/forgot/reset
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

// ScanRequest is the payload for POST /scans
type ScanRequest struct {
	ImagePath       string  `json:"image_path"`
	DiseaseName     string  `json:"disease_name,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
	Recommendations *string `json:"recommendations,omitempty"`
}

// ScanHistoryResponse is the payload for GET /scans
type ScanHistoryResponse struct {
	Scans []Scan `json:"scans"`
	Total int    `json:"total"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error string `json:"error"`
}
