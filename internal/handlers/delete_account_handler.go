package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	deleteaccountmodels "ke.kejani.api/internal/models/delete_account"
)

// DeleteAccount handles the complete deletion of a user account and all associated data
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req deleteaccountmodels.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Get UID from context (set by auth middleware)
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userUID, ok := uid.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	// Ensure the user can only delete their own account
	if req.UID != "" && req.UID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's account"})
		return
	}

	ctx := context.Background()

	// Perform the complete account deletion
	err := h.deleteAccountCompletely(ctx, userUID)
	if err != nil {
		h.logError(c, err, "account deletion failed", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account: " + err.Error()})
		return
	}

	response := deleteaccountmodels.DeleteAccountResponse{
		Success: true,
		Message: "Account and all associated data have been successfully deleted",
	}

	c.JSON(http.StatusOK, response)
}

// deleteAccountCompletely performs a comprehensive deletion of all user data
func (h *AuthHandler) deleteAccountCompletely(ctx context.Context, userUID string) error {
	// Start a database transaction for atomicity
	tx, err := h.postgres.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Step 1: Collect listing IDs (needed for cache invalidation after commit)
	listingIDs, err := h.getUserListingIDs(ctx, tx, userUID)
	if err != nil {
		return fmt.Errorf("failed to get user listings: %w", err)
	}

	// Step 2: Delete listings. Photos, amenities and inquiries referencing
	// them cascade at the database level.
	if _, err := tx.Exec(ctx, `DELETE FROM listings WHERE landlord_uid = $1`, userUID); err != nil {
		return fmt.Errorf("failed to delete listings: %w", err)
	}

	// Step 3: Delete inquiries this user opened against other landlords
	if _, err := tx.Exec(ctx, `DELETE FROM inquiries WHERE tenant_uid = $1`, userUID); err != nil {
		return fmt.Errorf("failed to delete inquiries: %w", err)
	}

	// Step 4: Delete document rows
	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE owner_uid = $1`, userUID); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}

	// Step 5: Delete payment records
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE payer_uid = $1`, userUID); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}

	// Step 6: Delete saved searches
	if _, err := tx.Exec(ctx, `DELETE FROM saved_searches WHERE user_uid = $1`, userUID); err != nil {
		return fmt.Errorf("failed to delete saved searches: %w", err)
	}

	// Step 7: Delete user record
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE uid = $1`, userUID); err != nil {
		return fmt.Errorf("failed to delete user record: %w", err)
	}

	// Step 8: Delete physical document files for this user
	if err := h.deleteUserDocumentFiles(userUID); err != nil {
		// Log but don't fail - file deletion is not critical for data privacy
		h.logger.Warnw("failed to delete document files", "uid", userUID, "error", err)
	}

	// Step 9: Clear Redis cache for this user
	if err := h.clearUserRedisCache(ctx, userUID, listingIDs); err != nil {
		// Log but don't fail - Redis cache clearing is not critical
		h.logger.Warnw("failed to clear cache", "uid", userUID, "error", err)
	}

	// Step 10: Delete Firebase user
	if err := h.deleteFirebaseUser(ctx, userUID); err != nil {
		return fmt.Errorf("failed to delete Firebase user: %w", err)
	}

	// Commit the transaction
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// getUserListingIDs retrieves all listing IDs owned by a user
func (h *AuthHandler) getUserListingIDs(ctx context.Context, tx pgx.Tx, userUID string) ([]string, error) {
	query := `SELECT id FROM listings WHERE landlord_uid = $1`
	rows, err := tx.Query(ctx, query, userUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listingIDs []string
	for rows.Next() {
		var listingID string
		if err := rows.Scan(&listingID); err != nil {
			return nil, err
		}
		listingIDs = append(listingIDs, listingID)
	}

	return listingIDs, nil
}

// clearUserRedisCache clears all Redis cache entries for the user
func (h *AuthHandler) clearUserRedisCache(ctx context.Context, userUID string, listingIDs []string) error {
	// Clear listing caches
	for _, listingID := range listingIDs {
		listingKey := fmt.Sprintf("listing:%s", listingID)
		if err := h.redis.Del(ctx, listingKey).Err(); err != nil {
			// Log but continue - cache clearing is not critical
			h.logger.Warnw("failed to clear listing cache", "listingId", listingID, "error", err)
		}
	}

	// Clear user-specific caches
	keys := []string{
		fmt.Sprintf("user:%s", userUID),
		fmt.Sprintf("account_details:%s", userUID),
	}
	if err := h.redis.Del(ctx, keys...).Err(); err != nil {
		h.logger.Warnw("failed to clear user cache", "uid", userUID, "error", err)
	}

	// The neighborhood list may reference deleted listings
	h.redis.Del(ctx, "neighborhoods")

	return nil
}

// deleteFirebaseUser deletes the user from Firebase Authentication
func (h *AuthHandler) deleteFirebaseUser(ctx context.Context, userUID string) error {
	authClient, err := h.firebaseApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("failed to get Firebase auth client: %w", err)
	}

	err = authClient.DeleteUser(ctx, userUID)
	if err != nil {
		return fmt.Errorf("failed to delete Firebase user: %w", err)
	}

	return nil
}

// deleteUserDocumentFiles deletes all physical document files for a user
func (h *AuthHandler) deleteUserDocumentFiles(userUID string) error {
	userDocumentDir := filepath.Join("internal", "files", "documents", userUID)

	// Check if user document directory exists
	if _, err := os.Stat(userDocumentDir); os.IsNotExist(err) {
		// Directory doesn't exist, nothing to delete
		return nil
	}

	// Remove the entire user directory and all its contents
	if err := os.RemoveAll(userDocumentDir); err != nil {
		return fmt.Errorf("failed to delete user document directory %s: %w", userDocumentDir, err)
	}

	return nil
}
