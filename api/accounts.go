package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/service/accounts"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service accounts.AccountUseCase
}

type createAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Balance  int64  `json:"balance"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func NewAccountHandler(service accounts.AccountUseCase) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.POST("/accounts", h.create)
	router.POST("/sessions", h.login)
	router.DELETE("/sessions", h.logout)
}

// RegisterAdmin exposes the destructive reset operation.
func (h *AccountHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("/reset", h.reset)
}

func (h *AccountHandler) create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CreateAccount(c.Request.Context(), req.Username, req.Password, req.Balance); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, messageResponse{Message: fmt.Sprintf("Created user %s", domain.NormalizeUsername(req.Username))})
}

func (h *AccountHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := sessionFrom(c)
	if err := h.service.Login(c.Request.Context(), sess, req.Username, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Logged in as %s", sess.Username)})
}

func (h *AccountHandler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), sessionFrom(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

func (h *AccountHandler) reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context(), sessionFrom(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Tables cleared"})
}
