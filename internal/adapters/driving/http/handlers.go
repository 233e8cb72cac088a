package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// AuthURLResponse carries the provider authorize URL the frontend
// should navigate to
// @Description OAuth authorize URL
type AuthURLResponse struct {
	AuthURL string `json:"auth_url" example:"https://github.com/login/oauth/authorize?..."`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and cache connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Sign-in endpoints

// handleSignIn godoc
// @Summary      Start sign-in
// @Description  Redirects the browser to the identity provider's authorize page
// @Tags         Authentication
// @Param        provider  path  string  true  "Identity provider (google or github)"
// @Success      302  "Redirect to the provider"
// @Failure      400  {object}  ErrorResponse  "Unknown provider"
// @Router       /auth/{provider}/signin [get]
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	provider := domain.Provider(r.PathValue("provider"))

	authURL, state, err := s.authService.BeginSignIn(r.Context(), provider)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	if err := s.setFlowCookie(w, signinCookieName, signinState{State: state, Provider: provider}); err != nil {
		writeError(w, http.StatusInternalServerError, "could not start sign-in")
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleSignInCallback godoc
// @Summary      Sign-in callback
// @Description  Receives the provider redirect, opens a session and forwards the browser to the frontend
// @Tags         Authentication
// @Param        provider  path   string  true   "Identity provider (google or github)"
// @Param        code      query  string  false  "Authorization code"
// @Param        state     query  string  false  "CSRF state"
// @Success      302  "Redirect to the frontend with token query params"
// @Router       /auth/{provider}/callback [get]
func (s *Server) handleSignInCallback(w http.ResponseWriter, r *http.Request) {
	provider := domain.Provider(r.PathValue("provider"))
	defer s.clearFlowCookie(w, signinCookieName)

	if errCode := r.URL.Query().Get("error"); errCode != "" {
		s.redirectSignInError(w, r, "provider_denied")
		return
	}

	var flow signinState
	if err := s.readFlowCookie(r, signinCookieName, &flow); err != nil {
		s.redirectSignInError(w, r, "missing_state")
		return
	}
	state := r.URL.Query().Get("state")
	if flow.Provider != provider || state == "" || state != flow.State {
		s.redirectSignInError(w, r, domain.CallbackErrStateMismatch)
		return
	}

	code := r.URL.Query().Get("code")
	resp, err := s.authService.CompleteSignIn(r.Context(), provider, code, r.UserAgent(), clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCode):
			s.redirectSignInError(w, r, domain.CallbackErrNoCode)
		case errors.Is(err, domain.ErrTokenExchange), errors.Is(err, domain.ErrNoAccessToken):
			s.redirectSignInError(w, r, domain.CallbackErrTokenExchange)
		case errors.Is(err, domain.ErrProfileFetch), errors.Is(err, domain.ErrInvalidProfile):
			s.redirectSignInError(w, r, "profile_failed")
		default:
			s.redirectSignInError(w, r, domain.CallbackErrServer)
		}
		return
	}

	q := url.Values{}
	q.Set("token", resp.Token)
	q.Set("refresh_token", resp.RefreshToken)
	http.Redirect(w, r, s.frontendURL+"/auth/callback?"+q.Encode(), http.StatusFound)
}

func (s *Server) redirectSignInError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, s.frontendURL+"/auth/callback?error="+url.QueryEscape(code), http.StatusFound)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogoutAll godoc
// @Summary      Logout everywhere
// @Description  Invalidate all sessions for the current user
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /auth/logout-all [post]
func (s *Server) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.authService.LogoutAll(r.Context(), authCtx.UserID); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleUpdateMe godoc
// @Summary      Update current user
// @Description  Update the authenticated user's profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.UpdateUserRequest  true  "Profile changes"
// @Success      200      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /me [patch]
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req driving.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Update(r.Context(), authCtx.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "update failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleDeleteMe godoc
// @Summary      Delete current user
// @Description  Delete the authenticated user's account and all sessions
// @Tags         Users
// @Security     BearerAuth
// @Success      204  "Account deleted"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /me [delete]
func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.userService.Delete(r.Context(), authCtx.UserID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GitHub connection endpoints

// handleGitHubConnect godoc
// @Summary      Start GitHub connection
// @Description  Returns the GitHub authorize URL and sets the flow cookie binding the attempt to the user
// @Tags         GitHub
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  AuthURLResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /github/connect [get]
func (s *Server) handleGitHubConnect(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	authURL, flow, err := s.connectionService.BeginConnect(r.Context(), authCtx.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "could not start connection")
		}
		return
	}

	if err := s.setFlowCookie(w, connectCookieName, flow); err != nil {
		writeError(w, http.StatusInternalServerError, "could not start connection")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"auth_url": authURL})
}

// handleGitHubCallback godoc
// @Summary      GitHub connection callback
// @Description  Receives the GitHub redirect, stores the encrypted tokens and forwards the browser to the frontend settings page
// @Tags         GitHub
// @Param        code   query  string  false  "Authorization code"
// @Param        state  query  string  false  "CSRF state"
// @Success      302  "Redirect to the frontend"
// @Router       /github/callback [get]
func (s *Server) handleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	defer s.clearFlowCookie(w, connectCookieName)

	if errCode := r.URL.Query().Get("error"); errCode != "" {
		s.redirectConnectError(w, r, domain.CallbackErrNoCode)
		return
	}

	var flow domain.OAuthFlow
	if err := s.readFlowCookie(r, connectCookieName, &flow); err != nil {
		s.redirectConnectError(w, r, domain.CallbackErrNoUserID)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	if err := s.connectionService.CompleteConnect(r.Context(), &flow, state, code); err != nil {
		s.redirectConnectError(w, r, callbackErrorCode(err))
		return
	}

	http.Redirect(w, r, s.frontendURL+"/settings?github=connected", http.StatusFound)
}

func (s *Server) redirectConnectError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, s.frontendURL+"/settings?error="+url.QueryEscape(code), http.StatusFound)
}

// callbackErrorCode maps domain errors onto the frontend's callback
// error contract
func callbackErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoCode):
		return domain.CallbackErrNoCode
	case errors.Is(err, domain.ErrMissingOAuthData):
		return domain.CallbackErrNoUserID
	case errors.Is(err, domain.ErrStateMismatch):
		return domain.CallbackErrStateMismatch
	case errors.Is(err, domain.ErrTokenExchange):
		return domain.CallbackErrTokenExchange
	case errors.Is(err, domain.ErrNoAccessToken):
		return domain.CallbackErrNoAccessToken
	case errors.Is(err, domain.ErrProfileFetch), errors.Is(err, domain.ErrUnauthorized):
		return domain.CallbackErrGitHubAPI
	case errors.Is(err, domain.ErrInvalidProfile):
		return domain.CallbackErrInvalidUser
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.CallbackErrUserNotFound
	case errors.Is(err, domain.ErrUpdateFailed):
		return domain.CallbackErrUpdateFailed
	default:
		return domain.CallbackErrServer
	}
}

// handleGitHubStatus godoc
// @Summary      GitHub connection status
// @Description  Reports whether the user's GitHub account is connected and whether the stored token still works
// @Tags         GitHub
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ConnectionStatus
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /github/status [get]
func (s *Server) handleGitHubStatus(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	status, err := s.connectionService.Status(r.Context(), authCtx.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "status check failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// handleGitHubDisconnect godoc
// @Summary      Disconnect GitHub
// @Description  Removes the stored GitHub connection. Disconnecting when not connected succeeds.
// @Tags         GitHub
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /github/disconnect [delete]
func (s *Server) handleGitHubDisconnect(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.connectionService.Disconnect(r.Context(), authCtx.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "disconnect failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// GitHub API endpoints

// handleListRepositories godoc
// @Summary      List repositories
// @Description  Pages through repositories visible to the user's GitHub token
// @Tags         GitHub
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        per_page  query     int  false  "Page size (default 30, max 100)"
// @Success      200  {object}  domain.RepositoryPage
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      412  {object}  ErrorResponse  "GitHub account not connected"
// @Failure      502  {object}  ErrorResponse  "GitHub API error"
// @Router       /github/repositories [get]
func (s *Server) handleListRepositories(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	repos, err := s.githubService.ListRepositories(r.Context(), authCtx.UserID, page, perPage)
	if err != nil {
		writeGitHubError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}

// handleCreateWorkflowPR godoc
// @Summary      Install review workflow
// @Description  Opens a pull request adding the review workflow file to the given repository
// @Tags         GitHub
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.WorkflowRequest  true  "Target repository"
// @Success      201      {object}  domain.WorkflowPR
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Repository not found"
// @Failure      412      {object}  ErrorResponse  "GitHub account not connected"
// @Failure      502      {object}  ErrorResponse  "GitHub API error"
// @Router       /github/workflow [post]
func (s *Server) handleCreateWorkflowPR(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req driving.WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pr, err := s.githubService.CreateWorkflowPR(r.Context(), authCtx.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "repo_owner and repo_name are required")
			return
		}
		writeGitHubError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pr)
}

// writeGitHubError maps downstream GitHub failures onto API statuses
func writeGitHubError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		writeError(w, http.StatusPreconditionFailed, "github account not connected")
	case errors.Is(err, domain.ErrDecryptionFailed):
		writeError(w, http.StatusPreconditionFailed, "stored github token unreadable, reconnect required")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "repository not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusBadGateway, "github rejected the stored token")
	default:
		writeError(w, http.StatusBadGateway, "github api error")
	}
}

// Knowledge base endpoints

// handleListKnowledge godoc
// @Summary      List knowledge items
// @Description  Lists the authenticated user's knowledge base entries, newest first
// @Tags         Knowledge
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.KnowledgeItem
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /knowledge [get]
func (s *Server) handleListKnowledge(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := s.knowledgeService.List(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list knowledge items")
		return
	}
	if items == nil {
		items = []*domain.KnowledgeItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// handleCreateKnowledge godoc
// @Summary      Create knowledge item
// @Description  Adds a new entry to the user's knowledge base
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.CreateKnowledgeRequest  true  "Item details"
// @Success      201      {object}  domain.KnowledgeItem
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /knowledge [post]
func (s *Server) handleCreateKnowledge(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req driving.CreateKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.knowledgeService.Create(r.Context(), authCtx.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "title and content are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create knowledge item")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// handleGetKnowledge godoc
// @Summary      Get knowledge item
// @Tags         Knowledge
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  domain.KnowledgeItem
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Not found"
// @Router       /knowledge/{id} [get]
func (s *Server) handleGetKnowledge(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	item, err := s.knowledgeService.Get(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "knowledge item not found")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// handleUpdateKnowledge godoc
// @Summary      Update knowledge item
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Item ID"
// @Param        request  body      driving.UpdateKnowledgeRequest  true  "Changes"
// @Success      200      {object}  domain.KnowledgeItem
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Not found"
// @Router       /knowledge/{id} [put]
func (s *Server) handleUpdateKnowledge(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req driving.UpdateKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.knowledgeService.Update(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "title and content must not be empty")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "knowledge item not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update knowledge item")
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// handleDeleteKnowledge godoc
// @Summary      Delete knowledge item
// @Tags         Knowledge
// @Security     BearerAuth
// @Param        id  path  string  true  "Item ID"
// @Success      204  "Deleted"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Not found"
// @Router       /knowledge/{id} [delete]
func (s *Server) handleDeleteKnowledge(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.knowledgeService.Delete(r.Context(), authCtx.UserID, r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "knowledge item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helpers

// clientIP extracts the caller's IP, honouring a forwarding proxy
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
