package config_test

import (
	"testing"
	"time"

	"github.com/okian/leetboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have the dashboard defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3001")
			convey.So(cfg.CacheTTL, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.SheetName, convey.ShouldEqual, "Real data Leetcode")
			convey.So(cfg.SheetRange, convey.ShouldEqual, "A:ZZ")
			convey.So(cfg.FetchTimeout, convey.ShouldEqual, 15*time.Second)
			convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"http://localhost:5173", "http://localhost:3000"})
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the refresh cadence follows the TTL until set", func() {
			convey.So(cfg.Refresh(), convey.ShouldEqual, 30*time.Second)
			cfg.RefreshInterval = time.Minute
			convey.So(cfg.Refresh(), convey.ShouldEqual, time.Minute)
		})

		convey.Convey("Then only a literal star allows any origin", func() {
			convey.So(cfg.AllowsAnyOrigin(), convey.ShouldBeFalse)
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, "*")
			convey.So(cfg.AllowsAnyOrigin(), convey.ShouldBeTrue)
		})
	})
}
