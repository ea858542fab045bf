package setup

import (
	"github.com/pingspace-dev/pingspace/internal/config"
	"github.com/pingspace-dev/pingspace/internal/handler"
	"github.com/pingspace-dev/pingspace/internal/service"
	"github.com/pingspace-dev/pingspace/internal/storage/pg"
	"github.com/pingspace-dev/pingspace/internal/utils/jwt"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Jwt     jwt.JwtService
	ApiKey  service.ApiKeyService
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	access := service.NewAccess(storage)

	auth := service.NewAuth(storage, jwtService, cfg.Private.HashCost)
	space := service.NewSpace(storage, access)
	topic := service.NewTopic(storage, access)
	apiKey := service.NewApiKey(storage, access, cfg.Public.ApiKeySecretSize, cfg.Private.HashCost)
	ping := service.NewPing(storage, access)

	h := handler.New(auth, space, topic, apiKey, ping, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Jwt:     jwtService,
		ApiKey:  apiKey,
		Config:  cfg,
	}, nil
}
