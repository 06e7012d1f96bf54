package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialised with defaults", func() {
			So(Init(), ShouldBeNil)
			So(Get(), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})

		Convey("When initialised with an unknown format", func() {
			err := Init(WithFormat("xml"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log format")
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		ctx := context.Background()

		Convey("When using the text format", func() {
			So(Init(WithOutput(&buf)), ShouldBeNil)
			Get().Info(ctx, "calculated", String("k", "v"), Int("n", 3), Bool("eligible", true))

			Convey("Then fields and the caller location are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "msg=calculated")
				So(out, ShouldContainSubstring, "k=v")
				So(out, ShouldContainSubstring, "n=3")
				So(out, ShouldContainSubstring, "eligible=true")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When using the json format", func() {
			So(Init(WithFormat("json"), WithOutput(&buf)), ShouldBeNil)
			Get().Warn(ctx, "bad input", Error(errors.New("boom")))

			Convey("Then a JSON object is written", func() {
				out := strings.TrimSpace(buf.String())
				So(out, ShouldStartWith, "{")
				So(out, ShouldContainSubstring, `"level":"WARN"`)
				So(out, ShouldContainSubstring, `"error":"boom"`)
			})
		})

		Convey("When the level is raised above debug", func() {
			So(Init(WithOutput(&buf)), ShouldBeNil)
			Get().Debug(ctx, "hidden")

			Convey("Then debug entries are dropped", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(Init(WithOutput(&buf)), ShouldBeNil)
			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(ctx, "visible")

			Convey("Then debug entries are written", func() {
				So(buf.String(), ShouldContainSubstring, "msg=visible")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "info", "", "WARN", "warning", " error "} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("loud"), ShouldNotBeNil)
	})
}

func TestLoggerNamed(t *testing.T) {
	Convey("Given a named logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)

		Named("api").Info(context.Background(), "hello", String("k", "v"))

		Convey("Then its fields are grouped under the name", func() {
			So(buf.String(), ShouldContainSubstring, "api.k=v")
		})
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		So(func() { Nop().Info(context.Background(), "ignored") }, ShouldNotPanic)
	})
}
