package data

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/feature_radar/app/display/internal/conf"
	"github.com/iWorld-y/feature_radar/app/display/internal/domain"
)

// DefaultSessionTTL 未配置时会话结果的保留时长
const DefaultSessionTTL = time.Hour

type entry struct {
	analysis *domain.Analysis
	savedAt  time.Time
}

// Data 会话内存存储，进程退出即丢弃
type Data struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewData(c *conf.Session, logger log.Logger) (*Data, func(), error) {
	ttl := DefaultSessionTTL
	if c != nil && c.Ttl != "" {
		d, err := time.ParseDuration(c.Ttl)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid session ttl %q: %w", c.Ttl, err)
		}
		ttl = d
	}

	d := &Data{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		d.mu.Lock()
		d.sessions = make(map[string]entry)
		d.mu.Unlock()
	}
	return d, cleanup, nil
}

// evictLocked 清理过期会话，调用方需持有锁
func (d *Data) evictLocked() {
	now := d.now()
	for id, e := range d.sessions {
		if now.Sub(e.savedAt) > d.ttl {
			delete(d.sessions, id)
		}
	}
}
