package main

import (
	"strings"

	"github.com/veedubyou/split-studio/src/server/application"
	"github.com/veedubyou/split-studio/src/shared/config"
	"github.com/veedubyou/split-studio/src/shared/config/dev"
	"github.com/veedubyou/split-studio/src/shared/config/envvar"
	"github.com/veedubyou/split-studio/src/shared/config/prod"
	"github.com/veedubyou/split-studio/src/shared/lib/env"
	"github.com/veedubyou/split-studio/src/shared/splitclient"
)

func main() {
	var appConfig application.Config

	switch env.Get() {
	case env.Production:
		commaSeparatedOrigins := envvar.MustGet(envvar.ALLOWED_FE_ORIGINS)
		allowedOrigins := strings.Split(commaSeparatedOrigins, ",")

		appConfig = application.Config{
			SplitBackend: splitclient.Config{
				Origin:     prod.SplitBackendOrigin,
				Timeout:    prod.SplitBackendTimeout,
				HealthPath: prod.SplitBackendHealthPath,
			},
			DynamoConfig: config.ProdDynamo{
				AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
				SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
				Region:          prod.DynamoDBRegion,
			},
			RabbitMQURL:       envvar.MustGet(envvar.RABBITMQ_URL),
			RabbitMQQueueName: envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
			CloudStorageConfig: config.ProdCloudStorage{
				StorageHost: prod.GOOGLE_STORAGE_HOST,
				SecretKey:   envvar.MustGet(envvar.GOOGLE_CLOUD_KEY),
				BucketName:  envvar.MustGet(envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME),
			},
			CORSAllowedOrigins: allowedOrigins,
			Port:               ":5000",
			Log:                true,
		}
	case env.Development:
		appConfig = application.Config{
			SplitBackend:       splitclient.DefaultConfig(),
			DynamoConfig:       dev.DynamoConfig,
			RabbitMQURL:        dev.RabbitMQHost,
			RabbitMQQueueName:  dev.RabbitMQQueueName,
			CloudStorageConfig: dev.CloudStorageConfig,
			CORSAllowedOrigins: []string{"*"},
			Port:               ":5000",
			Log:                true,
		}

	default:
		panic("Unexpected environment")
	}

	app := application.NewApp(appConfig)
	if err := app.Start(); err != nil {
		panic(err)
	}
}
