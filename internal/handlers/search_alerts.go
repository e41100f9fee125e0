package handlers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ke.kejani.api/internal/metrics"
	listingmodels "ke.kejani.api/internal/models/listing"
	"ke.kejani.api/internal/notify"
	"ke.kejani.api/internal/search"
)

// alertsWatermarkKey holds the RFC3339 timestamp of the last digest run.
// Only listings created after it are considered in the next run.
const alertsWatermarkKey = "alerts:last_run"

type AlertsHandler struct {
	postgres    *pgxpool.Pool
	redisClient *redis.Client
	notifier    *notify.Notifier
	cronManager *cron.Cron
	logger      *zap.SugaredLogger
}

// NewAlertsHandler builds the saved-search digest scheduler. The digest runs
// daily at 07:00 Nairobi time; call Start once the rest of the app is up and
// Stop during shutdown. Runs are skipped when no notifier is configured.
func NewAlertsHandler(dbPool *pgxpool.Pool, redisClient *redis.Client, notifier *notify.Notifier, logger *zap.SugaredLogger) *AlertsHandler {
	loc, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		logger.Warnw("failed to load Africa/Nairobi timezone, scheduling digest in UTC", "error", err)
		loc = time.UTC
	}

	h := &AlertsHandler{
		postgres:    dbPool,
		redisClient: redisClient,
		notifier:    notifier,
		cronManager: cron.New(cron.WithLocation(loc)),
		logger:      logger,
	}

	h.setupDigestScheduler()

	return h
}

func (h *AlertsHandler) setupDigestScheduler() {
	if _, err := h.cronManager.AddFunc("0 7 * * *", h.RunDigest); err != nil {
		h.logger.Errorw("failed to schedule saved-search digest", "error", err)
	}
}

// Start begins running scheduled digests.
func (h *AlertsHandler) Start() {
	h.cronManager.Start()
}

// Stop halts the scheduler and waits for an in-flight digest to finish.
func (h *AlertsHandler) Stop() {
	<-h.cronManager.Stop().Done()
}

// RunDigest matches listings created since the last run against every saved
// search and emails each owner a digest of the hits. The watermark only
// advances after a run completes, so a crashed run is retried in full.
func (h *AlertsHandler) RunDigest() {
	if h.notifier == nil {
		h.logger.Warnw("saved-search digest skipped, no notifier configured")
		return
	}

	ctx := context.Background()
	runStart := time.Now().UTC()

	since := h.lastRun(ctx, runStart)

	listings, err := h.listingsCreatedSince(ctx, since)
	if err != nil {
		h.logger.Errorw("failed to load new listings for digest", "error", err)
		return
	}
	if len(listings) == 0 {
		h.storeLastRun(ctx, runStart)
		return
	}

	searches, err := h.savedSearchesWithOwners(ctx)
	if err != nil {
		h.logger.Errorw("failed to load saved searches for digest", "error", err)
		return
	}

	sent := 0
	for _, saved := range searches {
		var items []notify.DigestItem
		for _, listing := range listings {
			if saved.Criteria.Matches(listing.Facts()) {
				items = append(items, notify.DigestItem{
					Title:        listing.Title,
					Neighborhood: listing.Neighborhood,
					MonthlyRent:  listing.MonthlyRent,
				})
			}
		}
		if len(items) == 0 || saved.OwnerEmail == "" {
			continue
		}

		subject, body := notify.DigestEmail(saved.Name, items)
		if err := h.notifier.SendEmail(ctx, saved.OwnerEmail, subject, body); err != nil {
			h.logger.Warnw("failed to send digest email", "error", err, "searchId", saved.ID)
			continue
		}
		metrics.AlertDigestsSent.Inc()
		sent++
	}

	h.storeLastRun(ctx, runStart)
	h.logger.Infow("saved-search digest completed",
		"newListings", len(listings),
		"savedSearches", len(searches),
		"digestsSent", sent,
	)
}

// lastRun reads the watermark, falling back to 24 hours before runStart when
// it is missing or unreadable.
func (h *AlertsHandler) lastRun(ctx context.Context, runStart time.Time) time.Time {
	fallback := runStart.Add(-24 * time.Hour)

	value, err := h.redisClient.Get(ctx, alertsWatermarkKey).Result()
	if err != nil {
		if err != redis.Nil {
			h.logger.Warnw("failed to read digest watermark", "error", err)
		}
		return fallback
	}

	since, err := time.Parse(time.RFC3339, value)
	if err != nil {
		h.logger.Warnw("invalid digest watermark, using fallback", "value", value)
		return fallback
	}
	return since
}

func (h *AlertsHandler) storeLastRun(ctx context.Context, runStart time.Time) {
	if err := h.redisClient.Set(ctx, alertsWatermarkKey, runStart.Format(time.RFC3339), 0).Err(); err != nil {
		h.logger.Warnw("failed to store digest watermark", "error", err)
	}
}

// digestSearch is a saved search joined with the owner's email address.
type digestSearch struct {
	ID         string
	Name       string
	Criteria   search.Criteria
	OwnerEmail string
}

func (h *AlertsHandler) listingsCreatedSince(ctx context.Context, since time.Time) ([]listingmodels.Listing, error) {
	query := `
		SELECT id, title, neighborhood, property_type, monthly_rent, square_feet
		FROM listings
		WHERE created_at > $1 AND status = $2
		ORDER BY created_at ASC
	`
	rows, err := h.postgres.Query(ctx, query, since, listingmodels.StatusAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []listingmodels.Listing
	for rows.Next() {
		var listing listingmodels.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.Title,
			&listing.Neighborhood,
			&listing.PropertyType,
			&listing.MonthlyRent,
			&listing.SquareFeet,
		); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (h *AlertsHandler) savedSearchesWithOwners(ctx context.Context) ([]digestSearch, error) {
	query := `
		SELECT s.id, s.name, s.criteria, u.email
		FROM saved_searches s
		JOIN users u ON u.uid = s.user_uid
	`
	rows, err := h.postgres.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []digestSearch
	for rows.Next() {
		var saved digestSearch
		if err := rows.Scan(&saved.ID, &saved.Name, &saved.Criteria, &saved.OwnerEmail); err != nil {
			return nil, err
		}
		searches = append(searches, saved)
	}
	return searches, rows.Err()
}
