package deps

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marqlabs/marq/internal/auth"
	"github.com/marqlabs/marq/internal/bookmarks"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	TrustProxy bool // true if running behind a trusted reverse proxy

	Bookmarks *bookmarks.Service // bookmark operations (create/list/delete/reorder)
	Auth      *auth.Service      // register/login
	Tokens    *auth.TokenManager // bearer-token verification for the auth middleware
	Users     store.UserStore    // user lookups for the auth middleware

	MongoClient *mongo.Client // for status/readiness probes
	RedisClient *redis.Client // nil when the enrichment cache is disabled
}
