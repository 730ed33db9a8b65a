package ui

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Nothing is shown initially", func() {
			So(m.View("body"), ShouldEqual, "body")
		})

		Convey("A notification is appended to the last line", func() {
			So(m.Update(Notify("copied")()), ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "copied")
			So(strings.Split(m.View("a\nb"), "\n")[1], ShouldContainSubstring, "copied")
		})

		Convey("A stale clear message does not hide a newer notification", func() {
			m.Update(Notification("first"))
			stale := ClearNotificationMsg{at: m.notifiedAt.Add(-1)}
			m.Update(stale)
			So(m.Current(), ShouldEqual, "first")

			m.Update(ClearNotificationMsg{at: m.notifiedAt})
			So(m.Current(), ShouldBeEmpty)
		})
	})
}
