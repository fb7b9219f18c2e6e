package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/models"
	"folio/internal/session"
)

type stubSessions struct {
	data *session.Data
	err  error
}

func (s stubSessions) Get(context.Context, *http.Request) (*session.Data, error) {
	return s.data, s.err
}

func TestLoadViewer(t *testing.T) {
	tests := []struct {
		name     string
		sessions SessionReader
		want     models.Viewer
	}{
		{name: "no session store", sessions: nil, want: models.Anonymous()},
		{name: "no session", sessions: stubSessions{}, want: models.Anonymous()},
		{name: "session error is anonymous", sessions: stubSessions{err: errors.New("valkey down")}, want: models.Anonymous()},
		{
			name:     "member session",
			sessions: stubSessions{data: &session.Data{MemberID: 5, Groups: []int64{2}}},
			want:     models.Viewer{LoggedIn: true, MemberID: 5, Groups: []int64{2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.Viewer
			handler := LoadViewer(tt.sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ViewerFromCtx(r.Context())
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

			if rr.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rr.Code)
			}
			if got.LoggedIn != tt.want.LoggedIn || got.MemberID != tt.want.MemberID || len(got.Groups) != len(tt.want.Groups) {
				t.Errorf("viewer = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewerFromEmptyContext(t *testing.T) {
	v := ViewerFromCtx(context.Background())
	if v.LoggedIn {
		t.Error("empty context must yield an anonymous viewer")
	}
}
