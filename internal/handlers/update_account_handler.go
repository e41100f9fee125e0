package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	updatemodels "ke.kejani.api/internal/models/update-account"
	"ke.kejani.api/internal/mpesa"
)

// UpdateAccount applies a partial update to the authenticated user's profile.
// Only keys present in the JSON body are touched.
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	// Ensure user is authenticated (middleware populates context)
	uidCtx, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid, ok := uidCtx.(string)
	if !ok || uid == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	ctx := context.Background()

	// Parse JSON body into a raw map to detect which keys are present
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// A body uid, when present, must match the authenticated user
	if b, ok := raw["uid"]; ok {
		var bodyUID string
		if err := json.Unmarshal(b, &bodyUID); err == nil && strings.TrimSpace(bodyUID) != "" && strings.TrimSpace(bodyUID) != uid {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update another user's account"})
			return
		}
	}

	setClauses := make([]string, 0)
	args := make([]interface{}, 0)
	argIndex := 1

	// displayName
	if b, ok := raw["displayName"]; ok {
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			v = strings.TrimSpace(v)
			if v != "" {
				setClauses = append(setClauses, fmt.Sprintf("display_name = $%d", argIndex))
				args = append(args, v)
				argIndex++
			}
		}
	}

	// phoneNumber (stored in M-Pesa subscriber format)
	if b, ok := raw["phoneNumber"]; ok {
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			v = strings.TrimSpace(v)
			if v != "" {
				normalized, err := mpesa.NormalizePhone(v)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
					return
				}
				setClauses = append(setClauses, fmt.Sprintf("phone_number = $%d", argIndex))
				args = append(args, normalized)
				argIndex++
			}
		}
	}

	if len(setClauses) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields in request"})
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE uid = $%d
		RETURNING uid, display_name, email, phone_number, role, email_verified, created_at, updated_at
	`, strings.Join(setClauses, ", "), argIndex)
	args = append(args, uid)

	var resp updatemodels.UpdateAccountResponse
	if err := h.postgres.QueryRow(ctx, query, args...).Scan(
		&resp.UID,
		&resp.DisplayName,
		&resp.Email,
		&resp.PhoneNumber,
		&resp.Role,
		&resp.EmailVerified,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logError(c, err, "failed to update user row", "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}

	// Invalidate cached account views
	h.redis.Del(ctx, fmt.Sprintf("account_details:%s", uid))
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.redis.Set(ctx, fmt.Sprintf("user:%s", uid), payload, 24*time.Hour).Err()
	}

	c.JSON(http.StatusOK, resp)
}
