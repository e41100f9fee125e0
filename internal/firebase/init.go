package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"ke.kejani.api/internal/config"
)

// InitFirebase initializes and returns a Firebase app instance
func InitFirebase(cfg config.FirebaseConfig) (*firebase.App, error) {
	ctx := context.Background()

	appConfig := &firebase.Config{
		ProjectID: cfg.ProjectID,
	}

	var app *firebase.App
	var err error

	if cfg.ServiceAccountPath != "" {
		// Initialize with service account file
		opt := option.WithCredentialsFile(cfg.ServiceAccountPath)
		app, err = firebase.NewApp(ctx, appConfig, opt)
	} else {
		// Initialize with default credentials (useful for Google Cloud deployment)
		app, err = firebase.NewApp(ctx, appConfig)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	// Make sure the Auth client is reachable before the server starts
	if _, err := app.Auth(ctx); err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	return app, nil
}

// GetAuthClient returns a Firebase Auth client from the app
func GetAuthClient(app *firebase.App) (*auth.Client, error) {
	ctx := context.Background()
	return app.Auth(ctx)
}
