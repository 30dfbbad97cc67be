package config

import "os"

const (
	firebaseProjectIDEnv       = "FIREBASE_PROJECT_ID"
	googleCloudProjectEnv      = "GOOGLE_CLOUD_PROJECT"
	firebaseCredentialsFileEnv = "FIREBASE_CREDENTIALS_FILE"
)

type FirebaseConfig struct {
	ProjectID string
	// CredentialsFile is a service account key path. Empty means application
	// default credentials.
	CredentialsFile string
}

func LoadFirebaseConfig() *FirebaseConfig {
	projectID := os.Getenv(firebaseProjectIDEnv)
	if projectID == "" {
		projectID = os.Getenv(googleCloudProjectEnv)
	}

	return &FirebaseConfig{
		ProjectID:       projectID,
		CredentialsFile: os.Getenv(firebaseCredentialsFileEnv),
	}
}

func (c *FirebaseConfig) Validate() error {
	if c == nil || c.ProjectID == "" {
		return ErrFirebaseProjectMissing
	}
	return nil
}
