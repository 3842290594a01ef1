package narrative_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/okian/stride/internal/adapters/narrative"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeGemini answers generateContent calls with a fixed candidate text.
type fakeGemini struct {
	mu     sync.Mutex
	text   string
	status int
	bodies []string
	paths  []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.bodies = append(f.bodies, string(body))
	f.paths = append(f.paths, r.URL.Path)
	status, text := f.status, f.text
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`)
		return
	}
	_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":`+quote(text)+`}]}}]}`)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func TestGenAIGenerator(t *testing.T) {
	Convey("Given a generator pointed at a fake Gemini endpoint", t, func() {
		ctx := context.Background()
		fake := &fakeGemini{text: `{"motivation":"m","focusArea":"f"}`}
		srv := httptest.NewServer(fake)
		defer srv.Close()

		gen, err := narrative.NewGenAIGenerator(ctx, "test-key",
			narrative.WithBaseURL(srv.URL),
			narrative.WithModel("gemini-test"),
			narrative.WithRatePerMinute(600),
		)
		So(err, ShouldBeNil)
		So(gen.Model(), ShouldEqual, "gemini-test")

		Convey("A JSON request asks for application/json and returns the text", func() {
			out, err := gen.Generate(ctx, narrative.Request{Kind: narrative.KindDashboard, Prompt: "analyze sprint data", JSON: true})
			So(err, ShouldBeNil)
			So(out, ShouldEqual, `{"motivation":"m","focusArea":"f"}`)
			So(fake.paths[0], ShouldContainSubstring, "gemini-test:generateContent")
			So(fake.bodies[0], ShouldContainSubstring, "analyze sprint data")
			So(fake.bodies[0], ShouldContainSubstring, "application/json")
		})

		Convey("An image request inlines the bytes", func() {
			img := []byte("frame-bytes")
			fake.text = "Good posture."
			out, err := gen.Generate(ctx, narrative.Request{Kind: narrative.KindPractice, Prompt: "critique", Image: img, ImageMIME: "image/jpeg"})
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Good posture.")
			So(fake.bodies[0], ShouldContainSubstring, base64.StdEncoding.EncodeToString(img))
			So(fake.bodies[0], ShouldContainSubstring, "image/jpeg")
		})

		Convey("An empty candidate is an error", func() {
			fake.text = "  "
			_, err := gen.Generate(ctx, narrative.Request{Kind: narrative.KindFinance, Prompt: "p"})
			So(errors.Is(err, narrative.ErrEmptyResponse), ShouldBeTrue)
		})

		Convey("An API error is returned and the gateway falls back", func() {
			fake.status = http.StatusServiceUnavailable
			_, err := gen.Generate(ctx, narrative.Request{Kind: narrative.KindFinance, Prompt: "p"})
			So(err, ShouldNotBeNil)

			gw := narrative.NewGateway(gen)
			So(gw.AdviseFinances(ctx, nil), ShouldEqual, narrative.FallbackFinanceAdvice)
		})

		Convey("A cancelled context stops before the call", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := gen.Generate(cctx, narrative.Request{Kind: narrative.KindFinance, Prompt: "p"})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("A generator without an API key is refused", t, func() {
		_, err := narrative.NewGenAIGenerator(context.Background(), "")
		So(errors.Is(err, narrative.ErrNoAPIKey), ShouldBeTrue)
	})
}
