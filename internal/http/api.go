package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
	"auth-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	sessions service.SessionService
	roles    service.RoleService
	tasks    service.TaskService
	requests service.RequestService
}

func NewHandler(users service.UserService, sessions service.SessionService, roles service.RoleService, tasks service.TaskService, requests service.RequestService) *Handler {
	return &Handler{
		users:    users,
		sessions: sessions,
		roles:    roles,
		tasks:    tasks,
		requests: requests,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusAccepted, gin.H{"ok": "ok"})
		})
		api.POST("/login", h.login)
	}

	authed := api.Group("", h.authRequired())
	{
		authed.POST("/logout", h.logout)
		authed.GET("/user", h.currentUser)

		authed.GET("/tasks", h.listTasks)
		authed.POST("/tasks", h.createTask)
		authed.GET("/tasks/:id", h.getTask)
		authed.DELETE("/tasks/:id", h.deleteTask)

		authed.GET("/requests", h.listRequests)
		authed.POST("/requests", h.createRequest)
		authed.GET("/requests/:id", h.getRequest)
		authed.DELETE("/requests/:id", h.deleteRequest)
	}

	admin := authed.Group("", h.roleRequired(domain.RoleAdmin))
	{
		admin.POST("/users", h.createUser)
		admin.GET("/users/:id", h.getUser)
		admin.POST("/tasks/:id/owners", h.addTaskOwner)
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username or password"})
		return
	}

	userID, err := h.users.VerifyCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	roles, err := h.roles.RolesOf(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":       userID,
		"session_token": session.Token,
		"roles":         roles,
	})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Revoke(c.Request.Context(), bearerToken(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) currentUser(c *gin.Context) {
	actor := currentActor(c)
	user, err := h.users.GetByID(c.Request.Context(), actor.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	roles, _ := contextRoles(c)
	c.JSON(http.StatusOK, userToResponse(user, roles))
}

type createUserRequest struct {
	Username  string   `json:"username" binding:"required"`
	Password  string   `json:"password" binding:"required"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ExtraRoles: req.Roles,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	roles, err := h.roles.RolesOf(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user, roles))
}

type createTaskRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), currentActor(c).UserID, req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(*task))
}

func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.tasks.ListOwned(c.Request.Context(), currentActor(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type addOwnerRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

func (h *Handler) addTaskOwner(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req addOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.AddOwner(c.Request.Context(), id, req.UserID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *Handler) createRequest(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.requests.Create(c.Request.Context(), currentActor(c).UserID, req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, requestToResponse(*request))
}

func (h *Handler) listRequests(c *gin.Context) {
	requests, err := h.requests.ListOwn(c.Request.Context(), currentActor(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]RequestResponse, len(requests))
	for i := range requests {
		resp[i] = requestToResponse(requests[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	request, err := h.requests.Get(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, requestToResponse(*request))
}

func (h *Handler) deleteRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.requests.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// writeError maps service error kinds to HTTP statuses. The services
// themselves never deal in statuses.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrSessionInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type UserResponse struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	IsActive  bool     `json:"is_active"`
	LastLogin *string  `json:"last_login,omitempty"`
	Roles     []string `json:"roles"`
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	Owners      []int64 `json:"owners"`
}

type RequestResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	SolicitorID int64  `json:"solicitor_id"`
	CreatedAt   string `json:"created_at"`
}

func userToResponse(user *domain.User, roles []string) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		Roles:     roles,
	}
	if resp.Roles == nil {
		resp.Roles = []string{}
	}
	if user.LastLogin != nil {
		v := user.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &v
	}
	return resp
}

func taskToResponse(task domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Description: task.Description,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		Owners:      task.Owners,
	}
	if resp.Owners == nil {
		resp.Owners = []int64{}
	}
	return resp
}

func requestToResponse(request domain.Request) RequestResponse {
	return RequestResponse{
		ID:          request.ID,
		Description: request.Description,
		SolicitorID: request.SolicitorID,
		CreatedAt:   request.CreatedAt.Format(time.RFC3339),
	}
}
