package api

import (
	"errors"
	"hash/fnv"
	"net/http"
	"sync"

	"github.com/Domenick1991/flightres/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHeader carries the session token in requests and responses.
const SessionHeader = "X-Session-Token"

const sessionContextKey = "session"

// sessionLocks serializes requests of one session within the process.
type sessionLocks [64]sync.Mutex

func (l *sessionLocks) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &l[h.Sum32()%uint32(len(l))]
	mu.Lock()
	return mu.Unlock
}

// SessionMiddleware loads the session named by SessionHeader, or starts a
// new one, and saves it back once the handler returns. A new session is
// only saved when the handler left state in it.
func SessionMiddleware(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	locks := &sessionLocks{}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *session.Session
		if token := c.GetHeader(SessionHeader); token != "" {
			unlock := locks.lock(token)
			defer unlock()

			loaded, err := store.Get(ctx, token)
			switch {
			case err == nil:
				sess = loaded
			case errors.Is(err, session.ErrNotFound):
			default:
				logger.Error("load session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
				return
			}
		}
		fresh := sess == nil
		if fresh {
			sess = session.New()
		}

		c.Set(sessionContextKey, sess)
		c.Header(SessionHeader, sess.ID)

		c.Next()

		if fresh && !sess.LoggedIn && len(sess.Itineraries) == 0 {
			return
		}
		if err := store.Save(ctx, sess); err != nil {
			logger.Error("save session", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	sess := session.New()
	c.Set(sessionContextKey, sess)
	return sess
}
