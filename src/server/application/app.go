package application

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/veedubyou/split-studio/src/server/internal/session/gateway"
	"github.com/veedubyou/split-studio/src/server/internal/session/usecase"
	"github.com/veedubyou/split-studio/src/shared/config"
	"github.com/veedubyou/split-studio/src/shared/events"
	"github.com/veedubyou/split-studio/src/shared/history"
	"github.com/veedubyou/split-studio/src/shared/history/storage"
	"github.com/veedubyou/split-studio/src/shared/lib/dynamo"
	"github.com/veedubyou/split-studio/src/shared/lib/rabbitmq"
	"github.com/veedubyou/split-studio/src/shared/orchestrator"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/splitclient"
	"github.com/veedubyou/split-studio/src/shared/stemstore/storagepath"
	"github.com/veedubyou/split-studio/src/shared/stemstore/store"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
)

type App struct {
	echo      *echo.Echo
	port      string
	usecase   sessionusecase.Usecase
	publisher *rabbitmq.QueuePublisher
}

// Config leaves DynamoConfig, RabbitMQURL and CloudStorageConfig empty to
// run without split history, phase events or the download archive
type Config struct {
	SplitBackend       splitclient.Config
	DynamoConfig       config.Dynamo
	RabbitMQURL        string
	RabbitMQQueueName  string
	CloudStorageConfig config.CloudStorage
	CORSAllowedOrigins []string
	SessionIdleTTL     time.Duration
	Port               string
	Log                bool
}

func NewApp(config Config) App {
	e := echo.New()
	e.HideBanner = true

	if config.Log {
		e.Use(middleware.Logger())
	}

	corsMiddleware := makeCorsMiddleware(config)

	handleRoute := func(method HTTPMethod, path string, handlerFunc echo.HandlerFunc) {
		params := func() (string, echo.HandlerFunc, echo.MiddlewareFunc) {
			return path, handlerFunc, corsMiddleware
		}

		e.OPTIONS(params())

		switch method {
		case GET:
			e.GET(params())
		case POST:
			e.POST(params())
		case PUT:
			e.PUT(params())
		case DELETE:
			e.DELETE(params())
		default:
			panic("unhandled http method!")
		}
	}

	publisher := makeRabbitMQPublisher(config)
	sessionUsecase := makeSessionUsecase(config, publisher)
	sessionGateway := sessiongateway.NewGateway(sessionUsecase)

	// health checks
	handleRoute(GET, "/health-check", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	handleRoute(GET, "/backend-health", sessionGateway.BackendHealth)

	// session routes
	handleRoute(POST, "/sessions", sessionGateway.CreateSession)
	handleRoute(GET, "/sessions/:id", func(c echo.Context) error {
		sessionID := c.Param("id")
		return sessionGateway.GetSession(c, sessionID)
	})
	handleRoute(DELETE, "/sessions/:id", func(c echo.Context) error {
		sessionID := c.Param("id")
		return sessionGateway.DeleteSession(c, sessionID)
	})
	handleRoute(GET, "/sessions/:id/history", func(c echo.Context) error {
		sessionID := c.Param("id")
		return sessionGateway.History(c, sessionID)
	})

	// intake routes
	handleRoute(POST, "/sessions/:id/drop", func(c echo.Context) error {
		sessionID := c.Param("id")
		return sessionGateway.Drop(c, sessionID)
	})
	handleRoute(POST, "/sessions/:id/pick", func(c echo.Context) error {
		sessionID := c.Param("id")
		return sessionGateway.Pick(c, sessionID)
	})
	handleRoute(POST, "/sessions/:id/reset", func(c echo.Context) error {
		sessionID := c.Param("id")
		return sessionGateway.Reset(c, sessionID)
	})

	// track routes
	handleRoute(POST, "/sessions/:id/tracks/:stem/toggle", func(c echo.Context) error {
		sessionID, stem := c.Param("id"), c.Param("stem")
		return sessionGateway.TogglePlay(c, sessionID, stem)
	})
	handleRoute(POST, "/sessions/:id/tracks/:stem/seek", func(c echo.Context) error {
		sessionID, stem := c.Param("id"), c.Param("stem")
		return sessionGateway.Seek(c, sessionID, stem)
	})
	handleRoute(POST, "/sessions/:id/tracks/:stem/media-events", func(c echo.Context) error {
		sessionID, stem := c.Param("id"), c.Param("stem")
		return sessionGateway.PostMediaEvent(c, sessionID, stem)
	})
	handleRoute(POST, "/sessions/:id/tracks/:stem/download", func(c echo.Context) error {
		sessionID, stem := c.Param("id"), c.Param("stem")
		return sessionGateway.Download(c, sessionID, stem)
	})

	return App{
		echo:      e,
		port:      config.Port,
		usecase:   sessionUsecase,
		publisher: publisher,
	}
}

func (a *App) Start() error {
	err := a.echo.Start(a.port)
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "Couldn't start echo server")
	}

	return nil
}

func (a *App) Stop() error {
	a.usecase.Close()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			log.WithError(err).Error("Failed to close rabbitMQ publisher")
		}
	}

	err := a.echo.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to stop echo server")
	}

	return nil
}

func makeRabbitMQPublisher(config Config) *rabbitmq.QueuePublisher {
	if config.RabbitMQURL == "" {
		return nil
	}

	publisher, err := rabbitmq.NewQueuePublisher(config.RabbitMQURL, config.RabbitMQQueueName)
	if err != nil {
		panic(errors.Wrap(err, "Failed to create rabbitMQ publisher"))
	}

	return publisher
}

func makeSessionUsecase(config Config, publisher *rabbitmq.QueuePublisher) sessionusecase.Usecase {
	observers := []orchestrator.Observer{events.LogObserver{}}
	if publisher != nil {
		observers = append(observers, events.NewRabbitMQObserver(publisher))
	}

	usecaseConfig := sessionusecase.Config{
		Splitter:  splitclient.NewClient(config.SplitBackend),
		Fetcher:   playback.HTTPFetcher{},
		Observers: observers,
		IdleTTL:   config.SessionIdleTTL,
	}

	if config.DynamoConfig != nil {
		recorder := makeHistoryRecorder(config.DynamoConfig)
		usecaseConfig.Recorder = recorder
		usecaseConfig.History = recorder
	}

	if config.CloudStorageConfig != nil {
		usecaseConfig.Savers = makeArchiveSavers(config.CloudStorageConfig)
	}

	return sessionusecase.NewUsecase(usecaseConfig)
}

func makeHistoryRecorder(dynamoConfig config.Dynamo) history.Recorder {
	dynamoDB := dynamolib.NewDynamoDBWrapperFromConfig(dynamoConfig)
	historyDB := historystorage.NewDB(dynamoDB)
	return history.NewRecorder(historyDB)
}

func makeArchiveSavers(cloudStorageConfig config.CloudStorage) sessionusecase.SaverFactory {
	fileStore, err := store.NewGoogleFileStore(cloudStorageConfig)
	if err != nil {
		panic(errors.Wrap(err, "Failed to create cloud storage client"))
	}

	pathGenerator := storagepath.Generator{
		Host:   cloudStorageConfig.GetStorageHost(),
		Bucket: cloudStorageConfig.GetBucket(),
	}

	return func(sessionID string) playback.Saver {
		return store.NewArchiveSaver(fileStore, pathGenerator, sessionID)
	}
}

func makeCorsMiddleware(config Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType},
	})
}
