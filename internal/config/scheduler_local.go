//go:build !gcloud

package config

// Locally nothing else triggers runs, so the in-process scheduler is on.
const defaultSchedulerEnabled = true
