// Package account implements signup, email verification, login and profile
// management. One handler serves all three roles (customer, rider, brand);
// the role is fixed at construction and baked into every lookup.
package account

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"flashfit_back_end/internal/cache"
	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"
	"flashfit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	role     string
	accounts store.AccountStore
	codes    cache.CodeStore
	mailer   utils.Mailer
}

func NewHandler(role string, accounts store.AccountStore, codes cache.CodeStore, mailer utils.Mailer) *Handler {
	return &Handler{role: role, accounts: accounts, codes: codes, mailer: mailer}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

// Signup handles POST /api/<role>/signup. The account starts unverified; a
// verification code goes out by email and must be confirmed before login.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All required fields must be provided."})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.accounts.GetByEmail(c.Request.Context(), h.role, email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "An account with this email already exists."})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("❌ Error checking email %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	now := time.Now()
	acc := models.Account{
		ID:         gocql.TimeUUID(),
		Role:       h.role,
		Name:       req.Name,
		Email:      email,
		Password:   string(hash),
		Phone:      req.Phone,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.accounts.Insert(c.Request.Context(), &acc); err != nil {
		log.Printf("❌ Error creating %s account: %v", h.role, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	code := utils.GenerateVerificationCode()
	if err := h.codes.Save(c.Request.Context(), h.role, acc.ID.String(), code); err != nil {
		log.Printf("❌ Error storing verification code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	if err := h.mailer.SendVerificationEmail(acc.Email, code); err != nil {
		log.Printf("❌ Error sending verification email to %s: %v", acc.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send verification email."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created. Please verify your email.",
		"userId":  acc.ID,
	})
}

type verifyRequest struct {
	UserID gocql.UUID `json:"userId" binding:"required"`
	OTP    string     `json:"otp" binding:"required"`
}

// VerifyEmail handles POST /api/<role>/verify-email.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User id and OTP are required."})
		return
	}

	acc, err := h.accounts.GetByID(c.Request.Context(), h.role, req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	if acc.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already verified."})
		return
	}

	switch err := h.codes.Verify(c.Request.Context(), h.role, req.UserID.String(), req.OTP); {
	case errors.Is(err, cache.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP."})
		return
	case errors.Is(err, cache.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP expired. Please request a new one."})
		return
	case err != nil:
		log.Printf("❌ Error verifying code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	if err := h.accounts.MarkVerified(c.Request.Context(), h.role, req.UserID); err != nil {
		log.Printf("❌ Error marking %s verified: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully."})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/<role>/login. Wrong email and wrong password get
// the same answer.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required."})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	acc, err := h.accounts.GetByEmail(c.Request.Context(), h.role, email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Credentials"})
		return
	}
	if err != nil {
		log.Printf("❌ Error fetching account %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	if !acc.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please verify your email first."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Credentials"})
		return
	}

	token, err := utils.GenerateJWT(acc.ID, h.role)
	if err != nil {
		log.Printf("❌ Error signing token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    gin.H{"id": acc.ID, "name": acc.Name, "email": acc.Email, "role": acc.Role},
	})
}

type resendRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResendOTP handles POST /api/<role>/resend-otp. A fresh code replaces the
// previous one; the old code dies immediately.
func (h *Handler) ResendOTP(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required."})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	acc, err := h.accounts.GetByEmail(c.Request.Context(), h.role, email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	if acc.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already verified."})
		return
	}

	code := utils.GenerateVerificationCode()
	if err := h.codes.Save(c.Request.Context(), h.role, acc.ID.String(), code); err != nil {
		log.Printf("❌ Error storing verification code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	if err := h.mailer.SendVerificationEmail(acc.Email, code); err != nil {
		log.Printf("❌ Error sending verification email to %s: %v", acc.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send verification email."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "A new OTP has been sent to your email."})
}

// GetProfile handles GET /api/<role>/profile/:id. The password hash never
// leaves the server (json:"-" on the model).
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}

	acc, err := h.accounts.GetByID(c.Request.Context(), h.role, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": acc})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateProfile handles PUT /api/<role>/profile/:id. Partial update: empty
// fields keep their stored value.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	acc, err := h.accounts.GetByID(c.Request.Context(), h.role, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	if req.Name != "" {
		acc.Name = req.Name
	}
	if req.Email != "" {
		acc.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		acc.Phone = req.Phone
	}
	acc.UpdatedAt = time.Now()

	if err := h.accounts.Update(c.Request.Context(), acc); err != nil {
		log.Printf("❌ Error updating profile %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": acc})
}

type brandSummary struct {
	ID    gocql.UUID `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Phone string     `json:"phone"`
}

// ListBrands handles GET /api/brand/all — the public brand directory. Only
// verified brands appear, with contact fields only.
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.accounts.ListVerified(c.Request.Context(), models.RoleBrand)
	if err != nil {
		log.Printf("❌ Error listing brands: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	out := make([]brandSummary, 0, len(brands))
	for _, b := range brands {
		out = append(out, brandSummary{ID: b.ID, Name: b.Name, Email: b.Email, Phone: b.Phone})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}
