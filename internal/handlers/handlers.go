package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atelierhub/atelier-backend/internal/config"
	"github.com/atelierhub/atelier-backend/internal/oauth"
	"github.com/atelierhub/atelier-backend/internal/services"
	"github.com/atelierhub/atelier-backend/internal/token"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler holds the process-scoped resources every route needs: the
// database handle acquired at startup, the upstream clients, and the
// session-token manager. Routes are methods on it.
type Handler struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Cfg    *config.Config
	OAuth  *oauth.Client
	Tokens *token.Manager

	Users    *services.UserService
	Counters *services.CounterService
	Cache    *services.CacheService

	// Uploads and Email are nil when their credentials are not configured;
	// the routes that need them report the feature as unavailable.
	Uploads *services.CloudinaryService
	Email   *services.EmailService
}

func New(db *mongo.Database, redisClient *redis.Client, cfg *config.Config, oauthClient *oauth.Client, tokens *token.Manager, uploads *services.CloudinaryService, email *services.EmailService) *Handler {
	return &Handler{
		DB:       db,
		Redis:    redisClient,
		Cfg:      cfg,
		OAuth:    oauthClient,
		Tokens:   tokens,
		Users:    services.NewUserService(db),
		Counters: services.NewCounterService(db),
		Cache:    services.NewCacheService(redisClient),
		Uploads:  uploads,
		Email:    email,
	}
}

// errImageUploadUnavailable is returned when an image is submitted but
// Cloudinary credentials were never configured.
var errImageUploadUnavailable = errors.New("image upload service not available")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
