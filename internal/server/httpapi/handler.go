package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	pb "github.com/dmitrijs2005/authkeeper/internal/proto"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pb.PingResponse{Status: "OK"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req pb.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req pb.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (s *Server) handleBiometricLogin(w http.ResponseWriter, r *http.Request) {
	var req pb.BiometricLoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.BiometricKey == "" {
		// An empty key is a failed login, not a malformed request.
		writeError(w, common.NewError(common.ErrorUnauthorized, "invalid credentials"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.auth.BiometricLogin(r.Context(), req.BiometricKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (s *Server) handleAddBiometricKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, common.NewError(common.ErrorUnauthorized, "missing token"))
		return
	}
	var req pb.AddBiometricKeyRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.auth.AddBiometricKey(r.Context(), userID, req.BiometricKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, common.NewError(common.ErrorUnauthorized, "missing token"))
		return
	}
	user, err := s.auth.Me(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.MeResponse{User: toPBUser(user)})
}

// decode reads the JSON body into dst and validates it. On failure the
// problem response has been written and decode returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !s.decodeBody(w, r, dst) {
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeProblem(w, http.StatusRequestEntityTooLarge, "Request Too Large", "")
		case errors.Is(err, io.EOF):
			writeError(w, common.NewError(common.ErrorValidation, "request body is required"))
		default:
			writeError(w, common.NewError(common.ErrorValidation, "malformed JSON body"))
		}
		return false
	}
	return true
}

func toAuthResponse(res *services.AuthResult) pb.AuthResponse {
	return pb.AuthResponse{
		AccessToken: res.Token,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		User:        toPBUser(res.User),
	}
}

func toPBUser(u *models.User) *pb.User {
	if u == nil {
		return nil
	}
	return &pb.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}
