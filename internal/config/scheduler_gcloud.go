//go:build gcloud

package config

// Cloud Scheduler calls the dispatch endpoint in the gcloud deployment.
const defaultSchedulerEnabled = false
