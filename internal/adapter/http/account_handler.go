package http

import (
	"net/http"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/http/middleware"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accounts *usecase.Accounts
}

func NewAccountHandler(accounts *usecase.Accounts) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type registerReq struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type roleReq struct {
	Role string `json:"role"`
}

// POST /accounts/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	res, err := h.accounts.Register(c.Request.Context(), usecase.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		AdminCode: req.AdminCode,
	})
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusCreated, res)
}

// POST /accounts/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	res, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /accounts/logout. Tokens are stateless; the client drops its copy.
func (h *AccountHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GET /accounts/me
func (h *AccountHandler) Me(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	acc, err := h.accounts.Profile(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, acc)
}

// GET /accounts (admin)
func (h *AccountHandler) List(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	accs, err := h.accounts.List(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, nonNil(accs))
}

// GET /accounts/:id (admin)
func (h *AccountHandler) Get(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	acc, err := h.accounts.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, acc)
}

// PUT /accounts/:id/role (admin)
func (h *AccountHandler) UpdateRole(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	caller, _ := middleware.PrincipalFrom(c)
	acc, err := h.accounts.UpdateRole(c.Request.Context(), caller, c.Param("id"), req.Role)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, acc)
}

// DELETE /accounts/:id (admin)
func (h *AccountHandler) Delete(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	if err := h.accounts.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
