package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sprintingbug/agricheck/internal/model"
	"github.com/sprintingbug/agricheck/internal/service"
)

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "email already registered")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "email and password are required")
		default:
			log.Printf("Error registering user: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("Error logging in: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// SecurityQuestions handles POST /api/v1/auth/forgot/questions
func (h *Handler) SecurityQuestions(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	questions, err := h.service.SecurityQuestions(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("Error fetching security questions: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// VerifySecurityAnswer handles POST /api/v1/auth/forgot/verify
func (h *Handler) VerifySecurityAnswer(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.VerifySecurityAnswer(r.Context(), req.Email, req.QuestionIndex, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrSecurityQuestion):
			writeError(w, http.StatusBadRequest, "security question not set")
		case errors.Is(err, service.ErrWrongAnswer):
			writeError(w, http.StatusBadRequest, "wrong answer")
		default:
			log.Printf("Error verifying security answer: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// ResetPassword handles POST /api/v1/auth/forgot/reset
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ResetPassword(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, service.ErrResetToken):
			writeError(w, http.StatusBadRequest, "invalid or expired reset token")
		default:
			log.Printf("Error resetting password: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetSecurityQuestions handles PUT /api/v1/users/me/security-questions
func (h *Handler) SetSecurityQuestions(w http.ResponseWriter, r *http.Request) {
	var req model.SetSecurityQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetSecurityQuestions(r.Context(), userIDFromContext(r.Context()), req.Questions); err != nil {
		switch {
		case errors.Is(err, service.ErrSecurityQuestion):
			writeError(w, http.StatusBadRequest, "between 1 and 3 questions with answers are required")
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			log.Printf("Error setting security questions: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
