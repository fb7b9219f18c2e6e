package portfolio

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"folio/internal/models"
)

func TestSortOutProtected(t *testing.T) {
	archives := map[int64]models.Archive{
		1: {ID: 1, Alias: "public"},
		2: {ID: 2, Alias: "members", Protected: true, Groups: []int64{10, 11}},
		3: {ID: 3, Alias: "staff", Protected: true, Groups: []int64{20}},
		4: {ID: 4, Alias: "nobody", Protected: true},
	}

	tests := []struct {
		name   string
		ids    []int64
		order  []int64
		viewer models.Viewer
		want   []int64
	}{
		{
			name:   "anonymous sees unprotected only",
			ids:    []int64{1, 2, 3},
			viewer: models.Anonymous(),
			want:   []int64{1},
		},
		{
			name:   "logged in without group memberships",
			ids:    []int64{1, 2},
			viewer: models.Viewer{LoggedIn: true, MemberID: 7},
			want:   []int64{1},
		},
		{
			name:   "logged in with empty group list sees no protected archive",
			ids:    []int64{1, 2, 4},
			viewer: models.Viewer{LoggedIn: true, Groups: []int64{}},
			want:   []int64{1},
		},
		{
			name:   "group intersection grants access",
			ids:    []int64{1, 2, 3},
			viewer: models.Viewer{LoggedIn: true, Groups: []int64{11}},
			want:   []int64{1, 2},
		},
		{
			name:   "protected archive without groups is never visible",
			ids:    []int64{4},
			viewer: models.Viewer{LoggedIn: true, Groups: []int64{10, 20}},
			want:   []int64{},
		},
		{
			name:   "groups without login are ignored",
			ids:    []int64{2},
			viewer: models.Viewer{Groups: []int64{10}},
			want:   []int64{},
		},
		{
			name:   "unknown ids are dropped",
			ids:    []int64{1, 99},
			viewer: models.Anonymous(),
			want:   []int64{1},
		},
		{
			name:   "store order wins over input order",
			ids:    []int64{3, 1, 2},
			order:  []int64{1, 2, 3},
			viewer: models.Viewer{LoggedIn: true, Groups: []int64{10, 20}},
			want:   []int64{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeArchives{byID: archives, order: tt.order}
			got, err := NewFilter(store).SortOutProtected(context.Background(), tt.ids, tt.viewer)
			if err != nil {
				t.Fatalf("SortOutProtected: %v", err)
			}
			if got == nil {
				t.Fatal("result is nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortOutProtected(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestSortOutProtectedEmptyInput(t *testing.T) {
	store := &fakeArchives{}
	f := NewFilter(store)

	got, err := f.SortOutProtected(context.Background(), nil, models.Anonymous())
	if err != nil || got != nil {
		t.Errorf("nil input: got %v, %v", got, err)
	}
	got, err = f.SortOutProtected(context.Background(), []int64{}, models.Anonymous())
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("empty input: got %v, %v", got, err)
	}
	if store.batchCalls != 0 {
		t.Errorf("store called %d times for empty input", store.batchCalls)
	}
}

func TestSortOutProtectedStoreError(t *testing.T) {
	store := &fakeArchives{err: errBackend}
	_, err := NewFilter(store).SortOutProtected(context.Background(), []int64{1}, models.Anonymous())
	if !errors.Is(err, errBackend) {
		t.Errorf("error = %v, want wrapped errBackend", err)
	}
}

func TestSortOutProtectedNoRecords(t *testing.T) {
	store := &fakeArchives{byID: map[int64]models.Archive{}}
	got, err := NewFilter(store).SortOutProtected(context.Background(), []int64{5, 6}, models.Anonymous())
	if err != nil {
		t.Fatalf("SortOutProtected: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestPartitionCountsHiddenArchives(t *testing.T) {
	archives := map[int64]models.Archive{
		1: {ID: 1},
		2: {ID: 2, Protected: true, Groups: []int64{10}},
		3: {ID: 3, Protected: true, Groups: []int64{20}},
	}

	tests := []struct {
		name        string
		ids         []int64
		viewer      models.Viewer
		wantVisible []int64
		wantHidden  int
	}{
		{name: "anonymous", ids: []int64{1, 2, 3}, viewer: models.Anonymous(), wantVisible: []int64{1}, wantHidden: 2},
		{name: "member of one group", ids: []int64{1, 2, 3}, viewer: models.Viewer{LoggedIn: true, Groups: []int64{10}}, wantVisible: []int64{1, 2}, wantHidden: 1},
		{name: "unknown ids are not hidden", ids: []int64{1, 98, 99}, viewer: models.Anonymous(), wantVisible: []int64{1}, wantHidden: 0},
		{name: "empty input", ids: []int64{}, viewer: models.Anonymous(), wantVisible: []int64{}, wantHidden: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, hidden, err := NewFilter(&fakeArchives{byID: archives}).Partition(context.Background(), tt.ids, tt.viewer)
			if err != nil {
				t.Fatalf("Partition: %v", err)
			}
			if !reflect.DeepEqual(visible, tt.wantVisible) || hidden != tt.wantHidden {
				t.Errorf("Partition(%v) = %v, %d, want %v, %d", tt.ids, visible, hidden, tt.wantVisible, tt.wantHidden)
			}
		})
	}
}
