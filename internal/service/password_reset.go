package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sprintingbug/agricheck/internal/auth"
	"github.com/sprintingbug/agricheck/internal/model"
	"go.uber.org/zap"
)

const (
	maxSecurityQuestions = 3
	minPasswordLength    = 8
)

// SetSecurityQuestions stores up to three question/answer pairs for the
// account. Answers are bcrypt-hashed; submitting a new set replaces all
// previously configured slots.
func (s *Service) SetSecurityQuestions(ctx context.Context, userID string, questions []model.SecurityQuestionInput) error {
	if len(questions) == 0 || len(questions) > maxSecurityQuestions {
		return ErrSecurityQuestion
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	update := &model.User{ID: userID}
	for i, input := range questions {
		question := strings.TrimSpace(input.Question)
		if question == "" || strings.TrimSpace(input.Answer) == "" {
			return ErrSecurityQuestion
		}

		hash, err := auth.HashSecurityAnswer(input.Answer)
		if err != nil {
			return err
		}
		switch i {
		case 0:
			update.SecurityQuestion1, update.SecurityAnswer1 = &question, &hash
		case 1:
			update.SecurityQuestion2, update.SecurityAnswer2 = &question, &hash
		case 2:
			update.SecurityQuestion3, update.SecurityAnswer3 = &question, &hash
		}
	}

	if err := s.userRepo.UpdateSecurityQuestions(ctx, update); err != nil {
		return fmt.Errorf("failed to update security questions: %w", err)
	}
	return nil
}

// SecurityQuestions returns the questions configured for an email, with the
// slot index each answer must be submitted against.
func (s *Service) SecurityQuestions(ctx context.Context, email string) (*model.SecurityQuestionsResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	resp := &model.SecurityQuestionsResponse{Questions: []string{}, Indices: []int{}}
	for _, prompt := range user.SecurityPrompts() {
		resp.Questions = append(resp.Questions, prompt.Question)
		resp.Indices = append(resp.Indices, prompt.Index)
	}
	return resp, nil
}

// VerifySecurityAnswer checks one answer against its slot and, on a match,
// mints a reset token and stores it with its expiry on the account.
func (s *Service) VerifySecurityAnswer(ctx context.Context, email string, questionIndex int, answer string) (*model.ResetTokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	var hash string
	for _, prompt := range user.SecurityPrompts() {
		if prompt.Index == questionIndex {
			hash = prompt.AnswerHash
			break
		}
	}
	if hash == "" {
		return nil, ErrSecurityQuestion
	}
	if !auth.VerifySecurityAnswer(answer, hash) {
		return nil, ErrWrongAnswer
	}

	token, err := s.tokens.IssueReset(user.Email)
	if err != nil {
		return nil, err
	}
	expires := time.Now().UTC().Add(s.tokens.ResetTTL())
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	s.logger.Info("reset token issued", zap.String("email", user.Email))
	return &model.ResetTokenResponse{ResetToken: token}, nil
}

// ResetPassword sets a new password for the account, consuming the reset
// token. The token must match the one stored, be unexpired, and verify as a
// reset token for the same email.
func (s *Service) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	newPassword := strings.TrimSpace(req.NewPassword)
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if user.ResetToken == nil || *user.ResetToken != req.ResetToken {
		return ErrResetToken
	}
	if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now().UTC()) {
		return ErrResetToken
	}
	tokenEmail, err := s.tokens.VerifyReset(req.ResetToken)
	if err != nil || tokenEmail != user.Email {
		return ErrResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password reset", zap.String("email", user.Email))
	return nil
}
