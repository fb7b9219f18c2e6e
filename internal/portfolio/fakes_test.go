package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/figure"
	"folio/internal/models"
)

var errBackend = errors.New("backend down")

type fakeArchives struct {
	byID       map[int64]models.Archive
	order      []int64 // store order for FindMultipleByIDs; defaults to request order
	err        error
	batchCalls int
	findCalls  int
}

func (f *fakeArchives) FindMultipleByIDs(_ context.Context, ids []int64) ([]models.Archive, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	order := f.order
	if order == nil {
		order = ids
	}
	var out []models.Archive
	for _, id := range order {
		if a, ok := f.byID[id]; ok && want[id] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArchives) FindByID(_ context.Context, id int64) (*models.Archive, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

type fakeCategories struct {
	byID  map[int64]models.Category
	err   error
	calls int
}

func (f *fakeCategories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type fakeBlocks struct {
	byItem    map[int64][]models.ContentBlock
	findCalls int
}

func (f *fakeBlocks) FindPublishedByItem(_ context.Context, itemID int64) ([]models.ContentBlock, error) {
	f.findCalls++
	return f.byItem[itemID], nil
}

type fakeFiles struct {
	byID       map[uuid.UUID]models.File
	batchCalls int
	findCalls  int
	lastBatch  []uuid.UUID
}

func (f *fakeFiles) FindByUUID(_ context.Context, id uuid.UUID) (*models.File, error) {
	f.findCalls++
	file, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &file, nil
}

func (f *fakeFiles) FindMultipleByUUIDs(_ context.Context, ids []uuid.UUID) ([]models.File, error) {
	f.batchCalls++
	f.lastBatch = ids
	var out []models.File
	for _, id := range ids {
		if file, ok := f.byID[id]; ok {
			out = append(out, file)
		}
	}
	return out, nil
}

type fakeStorage struct {
	present map[string]bool
}

func (f *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	return f.present[path], nil
}

// fakeEngine records every model it is asked to render.
type fakeEngine struct {
	models []map[string]any
	names  []string
	err    error
}

func (f *fakeEngine) Render(_ context.Context, name string, data map[string]any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	f.models = append(f.models, data)
	return fmt.Sprintf("<item %v>", data["id"]), nil
}

type fakeLang struct{}

func (fakeLang) Sprintf(_ string, key string, args ...any) string {
	switch key {
	case PhraseReadMore:
		return fmt.Sprintf("Read more: %s", args...)
	case PhraseOpen:
		return fmt.Sprintf("Open: %s", args...)
	case PhraseMore:
		return "more"
	}
	return key
}

type fakeBlockHTML struct{}

func (fakeBlockHTML) Render(b models.ContentBlock) (string, error) {
	return "<p>" + b.Body + "</p>", nil
}

type fakeComposer struct {
	requests []figure.Request
	data     *figure.Data
	err      error
}

func (f *fakeComposer) Compose(req figure.Request) (*figure.Data, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.data != nil {
		d := *f.data
		return &d, nil
	}
	return &figure.Data{
		Picture:  figure.Picture{Src: "/files/" + req.File.Path, Title: req.Title},
		Fullsize: req.Fullsize,
		ImageURL: req.ImageURL,
	}, nil
}

type fixture struct {
	archives   *fakeArchives
	categories *fakeCategories
	blocks     *fakeBlocks
	files      *fakeFiles
	storage    *fakeStorage
	engine     *fakeEngine
	images     *fakeComposer
}

func newFixture() *fixture {
	return &fixture{
		archives: &fakeArchives{byID: map[int64]models.Archive{
			1: {ID: 1, Alias: "work", ReaderPath: "/work"},
		}},
		categories: &fakeCategories{byID: map[int64]models.Category{}},
		blocks:     &fakeBlocks{byItem: map[int64][]models.ContentBlock{}},
		files:      &fakeFiles{byID: map[uuid.UUID]models.File{}},
		storage:    &fakeStorage{present: map[string]bool{}},
		engine:     &fakeEngine{},
		images:     &fakeComposer{},
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Archives:   f.archives,
		Categories: f.categories,
		Blocks:     f.blocks,
		Files:      f.files,
		Storage:    f.storage,
		Engine:     f.engine,
		Lang:       fakeLang{},
		BlockHTML:  fakeBlockHTML{},
		Images:     f.images,
	}
}

func (f *fixture) renderer(opts Options) *Renderer {
	return NewRenderer(f.deps(), opts)
}
