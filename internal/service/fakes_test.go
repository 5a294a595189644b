package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryDocuments is an in-memory DocumentStore.
type memoryDocuments struct {
	mu       sync.Mutex
	name     string
	docs     []model.Document
	findAlls int
	failNext error
}

func (m *memoryDocuments) Collection() string { return m.name }

func (m *memoryDocuments) takeErr() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memoryDocuments) Insert(_ context.Context, doc model.Document) (model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	stored := doc.WithoutID()
	stored["_id"] = primitive.NewObjectID()
	m.docs = append(m.docs, stored)
	return stored, nil
}

func (m *memoryDocuments) FindAll(context.Context) ([]model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findAlls++
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	out := make([]model.Document, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *memoryDocuments) index(id string) (int, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return -1, err
	}
	for i, d := range m.docs {
		if d.ID() == oid {
			return i, nil
		}
	}
	return -1, nil
}

func (m *memoryDocuments) FindByID(_ context.Context, id string) (model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.index(id)
	if err != nil || i < 0 {
		return nil, err
	}
	return m.docs[i], nil
}

func (m *memoryDocuments) UpdateByID(_ context.Context, id string, fields model.Document) (*model.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.index(id)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return &model.UpdateResult{}, nil
	}
	set := fields.WithoutID()
	for k, v := range set {
		m.docs[i][k] = v
	}
	res := &model.UpdateResult{MatchedCount: 1}
	if len(set) > 0 {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *memoryDocuments) DeleteByID(_ context.Context, id string) (*model.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.index(id)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return &model.DeleteResult{}, nil
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return &model.DeleteResult{DeletedCount: 1}, nil
}

// memoryCache is an in-memory ListCache.
type memoryCache struct {
	mu       sync.Mutex
	entries  map[string][]byte
	versions map[string]int64
	down     bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, versions: map[string]int64{}}
}

var errCacheDown = errors.New("redis: connection refused")

func (c *memoryCache) Get(_ context.Context, collection string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return nil, false, errCacheDown
	}
	b, ok := c.entries[collection]
	return b, ok, nil
}

func (c *memoryCache) Version(_ context.Context, collection string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return 0, errCacheDown
	}
	return c.versions[collection], nil
}

func (c *memoryCache) SetIfVersion(_ context.Context, collection string, version int64, payload []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return false, errCacheDown
	}
	if c.versions[collection] != version {
		return false, nil
	}
	c.entries[collection] = payload
	return true, nil
}

func (c *memoryCache) Invalidate(_ context.Context, collection string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	c.versions[collection]++
	delete(c.entries, collection)
	return nil
}

func (c *memoryCache) has(collection string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[collection]
	return ok
}

// recordingScheduler records warm-up requests.
type recordingScheduler struct {
	mu          sync.Mutex
	collections []string
}

func (r *recordingScheduler) EnqueueWarmCache(_ context.Context, collection string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections = append(r.collections, collection)
	return nil
}

// pausingDocuments takes its FindAll snapshot, then blocks until release is
// closed, the way a slow query returns rows read before a concurrent write.
type pausingDocuments struct {
	*memoryDocuments
	once    sync.Once
	paused  chan struct{}
	release chan struct{}
}

func newPausingDocuments(repo *memoryDocuments) *pausingDocuments {
	return &pausingDocuments{
		memoryDocuments: repo,
		paused:          make(chan struct{}),
		release:         make(chan struct{}),
	}
}

func (p *pausingDocuments) FindAll(ctx context.Context) ([]model.Document, error) {
	docs, err := p.memoryDocuments.FindAll(ctx)

	first := false
	p.once.Do(func() { first = true })
	if first {
		close(p.paused)
		<-p.release
	}
	return docs, err
}
