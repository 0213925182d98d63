package testlib

import (
	"time"

	server_app "github.com/veedubyou/split-studio/src/server/application"
	"github.com/veedubyou/split-studio/src/shared/config"
	"github.com/veedubyou/split-studio/src/shared/config/dev"
	"github.com/veedubyou/split-studio/src/shared/splitclient"
)

// ServerConfig runs the server against the given split backend with no
// history, events or archive wired in
func ServerConfig(splitBackendOrigin string) server_app.Config {
	return server_app.Config{
		SplitBackend:       SplitBackendConfig(splitBackendOrigin),
		CORSAllowedOrigins: []string{"*"},
		Port:               ServerPort,
		Log:                false,
	}
}

func SplitBackendConfig(origin string) splitclient.Config {
	return splitclient.Config{
		Origin:     origin,
		Timeout:    5 * time.Second,
		HealthPath: "/docs",
	}
}

// DynamoDB
const (
	DynamoAccessKeyID     = dev.DynamoAccessKeyID
	DynamoSecretAccessKey = dev.DynamoSecretAccessKey
	DynamoDBHost          = dev.DynamoDBHost
)

func DynamoConfig(region string) config.LocalDynamo {
	return config.LocalDynamo{
		AccessKeyID:     DynamoAccessKeyID,
		SecretAccessKey: DynamoSecretAccessKey,
		Region:          region,
		Host:            DynamoDBHost,
	}
}

// RabbitMQ
const (
	RabbitMQHost      = dev.RabbitMQHost
	RabbitMQQueueName = "split-studio-events-test"
)

// Server
const (
	ServerPort = ":5010"
)
