package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDocumentService(cache ListCache, warm WarmScheduler) (*DocumentService, *memoryDocuments) {
	logger := zerolog.Nop()
	repo := &memoryDocuments{name: model.CollectionProjects}
	return NewDocumentService(&logger, repo, cache, warm), repo
}

func TestDocumentServiceWithoutCache(t *testing.T) {
	svc, repo := newDocumentService(nil, nil)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := svc.Create(ctx, model.Document{"name": name}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	docs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("len = %d, want 3", len(docs))
	}
	if repo.findAlls != 1 {
		t.Errorf("findAlls = %d, want 1", repo.findAlls)
	}
}

func TestDocumentServiceCreateNilBody(t *testing.T) {
	svc, _ := newDocumentService(nil, nil)

	doc, err := svc.Create(context.Background(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.ID().IsZero() || len(doc) != 1 {
		t.Errorf("doc = %v, want only a generated _id", doc)
	}
}

func TestDocumentServiceListIsCached(t *testing.T) {
	cache := newMemoryCache()
	warm := &recordingScheduler{}
	svc, repo := newDocumentService(cache, warm)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Document{"name": "site", "stars": int32(5)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(warm.collections) != 1 || warm.collections[0] != model.CollectionProjects {
		t.Errorf("warm-ups = %v", warm.collections)
	}

	first, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	second, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if repo.findAlls != 1 {
		t.Errorf("findAlls = %d, want 1 (second list should be cached)", repo.findAlls)
	}
	if len(second) != 1 || len(first) != 1 {
		t.Fatalf("lists = %v / %v", first, second)
	}
	if second[0].ID() != created.ID() {
		t.Errorf("cached _id = %v, want %v", second[0]["_id"], created.ID())
	}
	if second[0]["stars"] != int32(5) {
		t.Errorf("cached stars = %#v, want int32(5)", second[0]["stars"])
	}
}

func TestDocumentServiceWritesInvalidate(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newDocumentService(cache, nil)
	ctx := context.Background()

	doc, _ := svc.Create(ctx, model.Document{"name": "a"})
	if _, err := svc.List(ctx); err != nil {
		t.Fatal(err)
	}
	if !cache.has(model.CollectionProjects) {
		t.Fatal("list was not cached")
	}

	if _, err := svc.Update(ctx, doc.ID().Hex(), model.Document{"name": "b"}); err != nil {
		t.Fatal(err)
	}
	if cache.has(model.CollectionProjects) {
		t.Error("update did not invalidate the list")
	}

	docs, _ := svc.List(ctx)
	if docs[0]["name"] != "b" {
		t.Errorf("list after update = %v", docs)
	}

	if _, err := svc.Delete(ctx, doc.ID().Hex()); err != nil {
		t.Fatal(err)
	}
	docs, _ = svc.List(ctx)
	if len(docs) != 0 {
		t.Errorf("list after delete = %v", docs)
	}
}

func TestDocumentServiceNoOpWritesKeepCache(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newDocumentService(cache, nil)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatal(err)
	}

	unknown := primitive.NewObjectID().Hex()
	res, err := svc.Delete(ctx, unknown)
	if err != nil || res.DeletedCount != 0 {
		t.Fatalf("Delete unknown = %+v, %v", res, err)
	}
	if !cache.has(model.CollectionProjects) {
		t.Error("deleting nothing should not invalidate")
	}
}

func TestDocumentServiceCacheDown(t *testing.T) {
	cache := newMemoryCache()
	cache.down = true
	svc, _ := newDocumentService(cache, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, model.Document{"name": "a"}); err != nil {
		t.Fatalf("Create with cache down: %v", err)
	}
	docs, err := svc.List(ctx)
	if err != nil || len(docs) != 1 {
		t.Errorf("List with cache down = %v, %v", docs, err)
	}
}

func TestDocumentServiceUndecodableCacheEntry(t *testing.T) {
	cache := newMemoryCache()
	svc, repo := newDocumentService(cache, nil)
	ctx := context.Background()

	cache.entries[model.CollectionProjects] = []byte("not bson")
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.findAlls != 1 {
		t.Error("a corrupt entry should fall back to the database")
	}
}

func TestDocumentServiceErrorsPropagate(t *testing.T) {
	svc, repo := newDocumentService(newMemoryCache(), nil)
	ctx := context.Background()
	boom := errors.New("boom")

	repo.failNext = boom
	if _, err := svc.List(ctx); !errors.Is(err, boom) {
		t.Errorf("List err = %v", err)
	}

	if _, err := svc.Get(ctx, "bad"); !errors.Is(err, model.ErrInvalidID) {
		t.Errorf("Get err = %v, want ErrInvalidID", err)
	}

	doc, err := svc.Get(ctx, primitive.NewObjectID().Hex())
	if err != nil || doc != nil {
		t.Errorf("Get unknown = %v, %v", doc, err)
	}
}

func TestWarmCache(t *testing.T) {
	cache := newMemoryCache()
	svc, repo := newDocumentService(cache, nil)
	ctx := context.Background()

	repo.docs = append(repo.docs, model.Document{"_id": primitive.NewObjectID()})
	if err := svc.WarmCache(ctx); err != nil {
		t.Fatalf("WarmCache: %v", err)
	}
	if !cache.has(model.CollectionProjects) {
		t.Error("warm-up did not fill the cache")
	}

	repo.failNext = errors.New("mongo down")
	if err := svc.WarmCache(ctx); err == nil {
		t.Error("warm-up errors must be returned for retry")
	}

	noCache, _ := newDocumentService(nil, nil)
	if err := noCache.WarmCache(ctx); err != nil {
		t.Errorf("WarmCache without cache: %v", err)
	}
}

func TestListOverlappingWriteIsNotCached(t *testing.T) {
	tests := []struct {
		name string
		fill func(ctx context.Context, svc *DocumentService) error
	}{
		{
			name: "list request",
			fill: func(ctx context.Context, svc *DocumentService) error {
				_, err := svc.List(ctx)
				return err
			},
		},
		{
			name: "warm-up job",
			fill: func(ctx context.Context, svc *DocumentService) error {
				return svc.WarmCache(ctx)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.Nop()
			cache := newMemoryCache()
			repo := newPausingDocuments(&memoryDocuments{name: model.CollectionProjects})
			svc := NewDocumentService(&logger, repo, cache, nil)
			ctx := context.Background()

			done := make(chan error, 1)
			go func() { done <- tt.fill(ctx, svc) }()

			// The fill has read the (empty) collection and is still running.
			<-repo.paused
			if _, err := svc.Create(ctx, model.Document{"name": "Demo"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			close(repo.release)
			if err := <-done; err != nil {
				t.Fatalf("fill: %v", err)
			}

			if cache.has(model.CollectionProjects) {
				t.Error("a list loaded before the create was cached")
			}

			docs, err := svc.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(docs) != 1 || docs[0]["name"] != "Demo" {
				t.Errorf("list after a completed create = %v, want the created record", docs)
			}
		})
	}
}

func TestCacheWarningsUseRequestLogger(t *testing.T) {
	cache := newMemoryCache()
	cache.down = true
	svc, _ := newDocumentService(cache, nil)

	var buf bytes.Buffer
	reqLogger := zerolog.New(&buf).With().Str("request_id", "req-7").Logger()
	ctx := reqLogger.WithContext(context.Background())

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !strings.Contains(buf.String(), "list cache read failed") || !strings.Contains(buf.String(), `"request_id":"req-7"`) {
		t.Errorf("log = %q, want a cache warning tagged with the request id", buf.String())
	}
}

type memorySkills struct {
	skills []model.Skill
}

func (m *memorySkills) Collection() string { return model.CollectionSkills }

func (m *memorySkills) Insert(_ context.Context, s model.Skill) (*model.Skill, error) {
	s.ID = primitive.NewObjectID()
	m.skills = append(m.skills, s)
	return &s, nil
}

func (m *memorySkills) FindAll(context.Context) ([]model.Skill, error) {
	out := make([]model.Skill, len(m.skills))
	copy(out, m.skills)
	return out, nil
}

func TestSkillService(t *testing.T) {
	logger := zerolog.Nop()
	cache := newMemoryCache()
	svc := NewSkillService(&logger, &memorySkills{}, cache, nil)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatal(err)
	}

	skill, err := svc.Create(ctx, "Go", "go.svg")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if skill.ID.IsZero() || skill.Title != "Go" || skill.Icon != "go.svg" {
		t.Errorf("skill = %+v", skill)
	}

	skills, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].ID != skill.ID {
		t.Errorf("skills = %+v", skills)
	}
}
