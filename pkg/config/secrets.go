package config

import (
	"context"
	"fmt"
	"log/slog"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ResolveSecrets fills credentials that are absent from the environment
// from Google Secret Manager, when GOOGLE_CLOUD_PROJECT is set. Missing
// individual secrets are logged and skipped so Validate can report them.
func (c *Config) ResolveSecrets(ctx context.Context) error {
	if c.GoogleCloudProject == "" {
		return nil
	}

	wanted := map[string]*string{
		"reddit-client-id":     &c.RedditClientID,
		"reddit-client-secret": &c.RedditClientSecret,
		"groq-api-key":         &c.GroqAPIKey,
		"tts-api-key":          &c.TTSAPIKey,
	}

	missing := 0
	for _, dst := range wanted {
		if *dst == "" {
			missing++
		}
	}
	if missing == 0 {
		return nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create secret manager client: %w", err)
	}
	defer client.Close()

	for name, dst := range wanted {
		if *dst != "" {
			continue
		}
		value, err := accessSecret(ctx, client, c.GoogleCloudProject, name)
		if err != nil {
			slog.Debug("Secret not available", "secret", name, "error", err)
			continue
		}
		*dst = value
		slog.Info("Loaded credential from Secret Manager", "secret", name)
	}

	return nil
}

func accessSecret(ctx context.Context, client *secretmanager.Client, project, name string) (string, error) {
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name),
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}
	return string(resp.GetPayload().GetData()), nil
}
