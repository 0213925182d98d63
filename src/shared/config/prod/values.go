package prod

import "time"

// DynamoDB
const (
	DynamoDBRegion = "us-east-2"
)

// Google Cloud Storage
const (
	GOOGLE_STORAGE_HOST = "https://storage.googleapis.com"
)

// Split backend
const (
	SplitBackendOrigin     = "https://audio-splitter-backend.fly.dev"
	SplitBackendTimeout    = 300 * time.Second
	SplitBackendHealthPath = "/docs"
)
