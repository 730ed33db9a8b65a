package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFingerprintTransport(t *testing.T) {
	Convey("Given a plain http server", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, r.Header.Get("Authorization"))
		}))
		defer server.Close()

		Convey("When it is requested through the streaming client", func() {
			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			So(err, ShouldBeNil)
			req.Header.Set("Authorization", "Bearer t")

			resp, err := Streaming.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the request goes through untouched", func() {
				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldEqual, "Bearer t")
			})
		})
	})
}
