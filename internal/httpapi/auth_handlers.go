package httpapi

import (
	"errors"
	"net/http"
	"time"

	"cardvault.org/internal/audit"
	"cardvault.org/internal/auth"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Telephone string `json:"telephone"`
	Role      string `json:"role"`
}

type registerResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, registerResponse{
			Status:  "Failed",
			Message: "Role is required",
		})
		return
	}

	token, expiresAt, err := a.auth.Register(r.Context(), auth.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Telephone: req.Telephone,
		Role:      role,
	})
	if err != nil {
		var ve *auth.ValidationError
		switch {
		case errors.Is(err, auth.ErrAlreadyExists):
			writeJSON(w, http.StatusBadRequest, registerResponse{
				Status:  "Failed",
				Message: "Account already exists",
			})
		case errors.As(err, &ve):
			writeJSON(w, http.StatusBadRequest, registerResponse{
				Status:  "Failed",
				Message: ve.Message,
			})
		default:
			writeError(w, r, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.register", map[string]any{
		"email":      req.Email,
		"role":       string(role),
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, registerResponse{
		Status:      "Success",
		Message:     "Account created successfully!",
		AccessToken: token,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, _, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			writeJSON(w, http.StatusBadRequest, loginResponse{
				Status:  "Failed",
				Message: "Wrong username or password",
			})
			return
		}
		writeError(w, r, http.StatusInternalServerError, "login failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"email": req.Email,
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Status:       "Success",
		Message:      "Logged in successfully",
		Token:        token,
		RefreshToken: "refresh token",
	})
}
