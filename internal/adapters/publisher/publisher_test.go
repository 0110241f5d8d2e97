package publisher_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-github/v58/github"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/stringball/scores/internal/adapters/publisher"
	"github.com/stringball/scores/internal/domain/model"
)

// fakeContents imitates the slice of the contents API the publisher talks
// to: GET returns the blob SHA for known paths, PUT records the upload.
type fakeContents struct {
	mu       sync.Mutex
	existing map[string]string
	puts     []putCall
}

type putCall struct {
	path    string
	message string
	branch  string
	sha     string
}

func (f *fakeContents) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		const prefix = "/repos/stringball/scores-data/contents/"
		if !strings.HasPrefix(r.URL.Path, prefix) {
			http.NotFound(w, r)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, prefix)

		switch r.Method {
		case http.MethodGet:
			sha, ok := f.existing[path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			fmt.Fprintf(w, `{"type":"file","path":%q,"sha":%q}`, path, sha)
		case http.MethodPut:
			var body struct {
				Message string `json:"message"`
				Branch  string `json:"branch"`
				SHA     string `json:"sha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.puts = append(f.puts, putCall{path: path, message: body.Message, branch: body.Branch, sha: body.SHA})
			fmt.Fprintf(w, `{"content":{"path":%q}}`, path)
		default:
			http.Error(w, "method", http.StatusMethodNotAllowed)
		}
	})
}

func (f *fakeContents) calls() []putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]putCall(nil), f.puts...)
}

func newFakePublisher(t *testing.T, fake *fakeContents, opts ...publisher.GitHubOption) *publisher.GitHub {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	So(err, ShouldBeNil)
	client.BaseURL = base

	all := append([]publisher.GitHubOption{publisher.WithClient(client)}, opts...)
	p, err := publisher.NewGitHub("test-token", "stringball", "scores-data", all...)
	So(err, ShouldBeNil)
	return p
}

func testSnapshot(t *testing.T) publisher.Snapshot {
	t.Helper()
	book := filepath.Join(t.TempDir(), "leaderboard.xlsx")
	So(os.WriteFile(book, []byte("workbook-bytes"), 0o644), ShouldBeNil)
	return publisher.Snapshot{
		Game:      "frost-signal",
		Best:      200,
		UpdatedAt: "2026-08-30T12:00:00Z",
		Entries: []model.Entry{
			{Rank: 1, Name: "bob", Score: 200, At: "2026-08-30T12:00:00Z"},
		},
		BookPath: book,
	}
}

func TestNewGitHub(t *testing.T) {
	Convey("Given incomplete credentials", t, func() {
		cases := []struct{ token, owner, repo string }{
			{"", "stringball", "scores-data"},
			{"tok", "", "scores-data"},
			{"tok", "stringball", ""},
		}

		for _, tc := range cases {
			Convey(fmt.Sprintf("Then %q/%q/%q is rejected", tc.token, tc.owner, tc.repo), func() {
				_, err := publisher.NewGitHub(tc.token, tc.owner, tc.repo)
				So(errors.Is(err, publisher.ErrMissingConfig), ShouldBeTrue)
			})
		}
	})
}

func TestPublishFirstTime(t *testing.T) {
	Convey("Given a repository without prior artifacts", t, func() {
		fake := &fakeContents{existing: map[string]string{}}
		p := newFakePublisher(t, fake)

		Convey("When a snapshot is published", func() {
			err := p.Publish(context.Background(), testSnapshot(t))

			Convey("Then both artifacts are created without a SHA", func() {
				So(err, ShouldBeNil)
				calls := fake.calls()
				So(calls, ShouldHaveLength, 2)
				So(calls[0].path, ShouldEqual, "leaderboard.xlsx")
				So(calls[1].path, ShouldEqual, "leaderboard.json")
				for _, c := range calls {
					So(c.sha, ShouldBeEmpty)
					So(c.branch, ShouldEqual, "main")
					So(c.message, ShouldEqual, "chore(leaderboard): frost-signal best 200 @ 2026-08-30T12:00:00Z")
				}
			})
		})
	})
}

func TestPublishUpdate(t *testing.T) {
	Convey("Given artifacts already present in the repository", t, func() {
		fake := &fakeContents{existing: map[string]string{
			"leaderboard.xlsx": "sha-book",
			"leaderboard.json": "sha-json",
		}}
		p := newFakePublisher(t, fake)

		Convey("When a snapshot is published", func() {
			err := p.Publish(context.Background(), testSnapshot(t))

			Convey("Then both artifacts are updated with their blob SHA", func() {
				So(err, ShouldBeNil)
				calls := fake.calls()
				So(calls, ShouldHaveLength, 2)
				So(calls[0].sha, ShouldEqual, "sha-book")
				So(calls[1].sha, ShouldEqual, "sha-json")
			})
		})
	})
}

func TestPublishCustomDestination(t *testing.T) {
	Convey("Given custom branch and artifact paths", t, func() {
		fake := &fakeContents{existing: map[string]string{}}
		p := newFakePublisher(t, fake,
			publisher.WithBranch("archive"),
			publisher.WithBookPath("boards/scores.xlsx"),
			publisher.WithJSONPath("boards/scores.json"),
		)

		Convey("When a snapshot is published", func() {
			err := p.Publish(context.Background(), testSnapshot(t))

			Convey("Then uploads target the configured destination", func() {
				So(err, ShouldBeNil)
				calls := fake.calls()
				So(calls, ShouldHaveLength, 2)
				So(calls[0].path, ShouldEqual, "boards/scores.xlsx")
				So(calls[1].path, ShouldEqual, "boards/scores.json")
				So(calls[0].branch, ShouldEqual, "archive")
			})
		})
	})
}

func TestPublishStampFallback(t *testing.T) {
	Convey("Given a snapshot without a timestamp", t, func() {
		fake := &fakeContents{existing: map[string]string{}}
		now := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
		p := newFakePublisher(t, fake, publisher.WithClock(func() time.Time { return now }))

		snap := testSnapshot(t)
		snap.UpdatedAt = ""

		Convey("When it is published", func() {
			err := p.Publish(context.Background(), snap)

			Convey("Then the commit message stamps the clock time", func() {
				So(err, ShouldBeNil)
				calls := fake.calls()
				So(calls, ShouldHaveLength, 2)
				So(calls[0].message, ShouldEqual, "chore(leaderboard): frost-signal best 200 @ 2026-09-01T08:30:00Z")
			})
		})
	})
}

func TestPublishMissingArtifact(t *testing.T) {
	Convey("Given a snapshot whose workbook no longer exists", t, func() {
		fake := &fakeContents{existing: map[string]string{}}
		p := newFakePublisher(t, fake)

		snap := testSnapshot(t)
		snap.BookPath = filepath.Join(t.TempDir(), "missing.xlsx")

		Convey("When it is published", func() {
			err := p.Publish(context.Background(), snap)

			Convey("Then the read failure surfaces and nothing is uploaded", func() {
				So(errors.Is(err, publisher.ErrReadArtifact), ShouldBeTrue)
				So(fake.calls(), ShouldBeEmpty)
			})
		})
	})
}

func TestNoop(t *testing.T) {
	Convey("Given the no-op publisher", t, func() {
		var p publisher.Noop

		Convey("Then publishing always succeeds", func() {
			So(p.Publish(context.Background(), publisher.Snapshot{}), ShouldBeNil)
		})
	})
}
