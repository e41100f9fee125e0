package handlers

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	firebaseutil "ke.kejani.api/internal/firebase"
	usermodels "ke.kejani.api/internal/models/account"
	createmodels "ke.kejani.api/internal/models/create_account"
	"ke.kejani.api/internal/mpesa"
)

// CreateAccount handles marketplace account creation via Firebase. The caller
// either sends email/password (the Firebase user is created here) or a
// Firebase ID token minted by a client-side signup flow.
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req createmodels.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Role defaults to TENANT; only the two marketplace roles are accepted
	if req.Role == "" {
		req.Role = usermodels.RoleTenant
	}
	if !usermodels.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be TENANT or LANDLORD"})
		return
	}

	// Phone numbers are stored in M-Pesa subscriber format (254XXXXXXXXX)
	if req.PhoneNumber != "" {
		normalized, err := mpesa.NormalizePhone(req.PhoneNumber)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
			return
		}
		req.PhoneNumber = normalized
	}

	ctx := context.Background()
	authClient, err := firebaseutil.GetAuthClient(h.firebaseApp)
	if err != nil {
		h.logError(c, err, "failed to initialize auth client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize auth client"})
		return
	}

	var userRecord *auth.UserRecord
	var sessionToken string

	if req.Token != "" {
		// Client already created the Firebase user; verify and adopt it
		token, err := authClient.VerifyIDToken(ctx, req.Token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userRecord, err = authClient.GetUser(ctx, token.UID)
		if err != nil {
			h.logError(c, err, "failed to load Firebase user", "uid", token.UID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user information"})
			return
		}

		sessionToken = req.Token
	} else {
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Either token or email/password must be provided"})
			return
		}

		// Create user parameters
		params := (&auth.UserToCreate{}).
			Email(req.Email).
			EmailVerified(false).
			Password(req.Password).
			Disabled(false)

		// Set display name if provided
		if req.DisplayName != "" {
			params = params.DisplayName(req.DisplayName)
		}

		// Create user in Firebase
		userRecord, err = authClient.CreateUser(ctx, params)
		if err != nil {
			// Handle specific Firebase errors
			if auth.IsEmailAlreadyExists(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
				return
			}
			h.logError(c, err, "failed to create Firebase user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
			return
		}

		sessionToken, err = authClient.CustomToken(ctx, userRecord.UID)
		if err != nil {
			h.logError(c, err, "failed to mint custom token", "uid", userRecord.UID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create authentication token"})
			return
		}
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = userRecord.DisplayName
	}

	// Create user object for storage
	user := &usermodels.User{
		UID:           userRecord.UID,
		DisplayName:   displayName,
		Email:         userRecord.Email,
		Token:         sessionToken,
		PhoneNumber:   req.PhoneNumber,
		Role:          req.Role,
		EmailVerified: userRecord.EmailVerified,
	}

	// Store user in PostgreSQL
	if err := h.storeUserInPostgres(ctx, user); err != nil {
		h.logError(c, err, "failed to upsert user row", "uid", user.UID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store user"})
		return
	}

	// Store the session in Redis so the auth middleware can resolve the token
	if err := h.createSession(ctx, user); err != nil {
		h.logError(c, err, "failed to create session", "uid", user.UID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	response := createmodels.CreateAccountResponse{
		UID:         user.UID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Token:       sessionToken,
	}

	c.JSON(http.StatusCreated, response)
}
