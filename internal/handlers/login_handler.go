package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	firebaseutil "ke.kejani.api/internal/firebase"
	usermodels "ke.kejani.api/internal/models/account"
	models "ke.kejani.api/internal/models/login"
)

type AuthHandler struct {
	firebaseApp *firebase.App
	postgres    *pgxpool.Pool
	redis       *redis.Client
	logger      *zap.SugaredLogger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(firebaseApp *firebase.App, postgres *pgxpool.Pool, redis *redis.Client, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		firebaseApp: firebaseApp,
		postgres:    postgres,
		redis:       redis,
		logger:      logger,
	}
}

// Login handles user login via Firebase
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
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

	// Handle token validation case
	if req.Token != "" && req.Email == "" && req.Password == "" {
		// Validate the provided token
		token, err := authClient.VerifyIDToken(ctx, req.Token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Get user record
		userRecord, err = authClient.GetUser(ctx, token.UID)
		if err != nil {
			h.logError(c, err, "failed to load Firebase user", "uid", token.UID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user information"})
			return
		}

		sessionToken = req.Token
	} else if req.Email != "" && req.Password != "" {
		// Handle email/password login
		// Note: Firebase Admin SDK doesn't support email/password authentication directly;
		// the mobile and web clients verify the password against Firebase Auth and then
		// exchange the resulting ID token. The custom-token path here backs the CLI and tests.

		// Get user by email
		userRecord, err = authClient.GetUserByEmail(ctx, req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		// Create custom token
		sessionToken, err = authClient.CustomToken(ctx, userRecord.UID)
		if err != nil {
			h.logError(c, err, "failed to mint custom token", "uid", userRecord.UID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create authentication token"})
			return
		}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either token or email/password must be provided"})
		return
	}

	// Load the marketplace role; accounts created before login default to TENANT
	role, err := h.loadUserRole(ctx, userRecord.UID)
	if err != nil {
		role = usermodels.RoleTenant
	}

	// Create user object for storage
	user := &usermodels.User{
		UID:           userRecord.UID,
		DisplayName:   userRecord.DisplayName,
		Email:         userRecord.Email,
		Token:         sessionToken,
		PhoneNumber:   userRecord.PhoneNumber,
		Role:          role,
		EmailVerified: userRecord.EmailVerified,
	}

	// Store/update user in PostgreSQL
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

	// Create response
	response := models.LoginResponse{
		UID:           user.UID,
		DisplayName:   user.DisplayName,
		Email:         user.Email,
		Token:         sessionToken,
		PhoneNumber:   user.PhoneNumber,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	}

	c.JSON(http.StatusOK, response)
}

// createSession caches the token-to-uid mapping and the user object with a
// 24-hour expiration.
func (h *AuthHandler) createSession(ctx context.Context, user *usermodels.User) error {
	sessionKey := fmt.Sprintf("session:%s", user.Token)
	if err := h.redis.Set(ctx, sessionKey, user.UID, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to cache session token: %w", err)
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	userKey := fmt.Sprintf("user:%s", user.UID)
	if err := h.redis.Set(ctx, userKey, userJSON, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// loadUserRole fetches the marketplace role for a user
func (h *AuthHandler) loadUserRole(ctx context.Context, uid string) (string, error) {
	var role string
	query := `SELECT role FROM users WHERE uid = $1`
	if err := h.postgres.QueryRow(ctx, query, uid).Scan(&role); err != nil {
		return "", err
	}
	return role, nil
}

// storeUserInPostgres stores or updates user information in PostgreSQL
func (h *AuthHandler) storeUserInPostgres(ctx context.Context, user *usermodels.User) error {
	query := `
		INSERT INTO users (uid, display_name, email, token, phone_number, role, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (uid)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			token = EXCLUDED.token,
			phone_number = EXCLUDED.phone_number,
			role = EXCLUDED.role,
			email_verified = EXCLUDED.email_verified,
			updated_at = NOW()
	`

	_, err := h.postgres.Exec(ctx, query,
		user.UID,
		user.DisplayName,
		user.Email,
		user.Token,
		user.PhoneNumber,
		user.Role,
		user.EmailVerified,
	)

	return err
}
