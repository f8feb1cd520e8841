package model

import "time"

// User represents a registered account. The security question and reset
// token columns back the forgot-password flow; answers are stored as bcrypt
// hashes, never plaintext.
type User struct {
	ID           string `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`

	SecurityQuestion1 *string `db:"security_question_1" json:"-"`
	SecurityAnswer1   *string `db:"security_answer_1" json:"-"`
	SecurityQuestion2 *string `db:"security_question_2" json:"-"`
	SecurityAnswer2   *string `db:"security_answer_2" json:"-"`
	SecurityQuestion3 *string `db:"security_question_3" json:"-"`
	SecurityAnswer3   *string `db:"security_answer_3" json:"-"`

	ResetToken        *string    `db:"reset_token" json:"-"`
	ResetTokenExpires *time.Time `db:"reset_token_expires" json:"-"`
}

// SecurityPrompt pairs a question with the hash of its expected answer.
// Index identifies the slot (0 to 2) across the forgot flow.
type SecurityPrompt struct {
	Index      int
	Question   string
	AnswerHash string
}

// SecurityPrompts returns the user's configured questions with their slot
// indices, skipping unset slots.
func (u *User) SecurityPrompts() []SecurityPrompt {
	slots := []struct {
		question *string
		answer   *string
	}{
		{u.SecurityQuestion1, u.SecurityAnswer1},
		{u.SecurityQuestion2, u.SecurityAnswer2},
		{u.SecurityQuestion3, u.SecurityAnswer3},
	}

	var prompts []SecurityPrompt
	for i, slot := range slots {
		if slot.question == nil || *slot.question == "" || slot.answer == nil || *slot.answer == "" {
			continue
		}
		prompts = append(prompts, SecurityPrompt{Index: i, Question: *slot.question, AnswerHash: *slot.answer})
	}
	return prompts
}

// Scan represents one stored disease-scan result
type Scan struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	ImagePath       string    `db:"image_path" json:"image_path"`
	DiseaseName     string    `db:"disease_name" json:"disease_name"`
	Confidence      float64   `db:"confidence" json:"confidence"`
	Recommendations *string   `db:"recommendations" json:"recommendations,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// HealthyLabel marks a scan whose classification found no disease
const HealthyLabel = "Healthy"

// UserStats aggregates a user's scan history
type UserStats struct {
	TotalScans   int `db:"total_scans" json:"total_scans"`
	HealthyCrops int `db:"healthy_crops" json:"healthy_crops"`
	Diseases     int `db:"diseases" json:"diseases"`
	Reports      int `json:"reports"`
}
