package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should own a registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When two managers are created", func() {
			Convey("Then registration should not collide", func() {
				So(func() {
					NewManager()
					NewManager()
				}, ShouldNotPanic)
			})
		})

		Convey("When creating with a custom registry and options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithRegistry(registry),
				WithNamespace("test"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithProcessCollectors(),
			)
			manager.RecordCleanupFailure()

			Convey("Then metrics should be registered there", func() {
				So(manager.Registry(), ShouldEqual, registry)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_artifact_cleanup_failures_total"], ShouldBeTrue)
				So(names["go_goroutines"], ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		manager := NewManager()

		Convey("When recording exports", func() {
			manager.RecordExport(OutcomeSuccess, 20*time.Millisecond, 9000)
			manager.RecordExport(OutcomeSuccess, 30*time.Millisecond, 9100)
			manager.RecordExport(OutcomeSerialization, time.Millisecond, 0)

			Convey("Then outcomes should be counted separately", func() {
				So(testutil.ToFloat64(manager.exports.WithLabelValues(OutcomeSuccess)), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.exports.WithLabelValues(OutcomeSerialization)), ShouldEqual, 1)
				So(testutil.CollectAndCount(manager.documentSize), ShouldEqual, 1)
			})
		})

		Convey("When recording cleanup failures", func() {
			manager.RecordCleanupFailure()

			Convey("Then the counter should increase", func() {
				So(testutil.ToFloat64(manager.cleanupFailures), ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP requests", func() {
			manager.RecordHTTPRequest("/api/export-word", http.MethodPost, http.StatusOK, 5*time.Millisecond)
			manager.RecordHTTPRequest("/api/export-word", http.MethodPost, http.StatusUnprocessableEntity, time.Millisecond)

			Convey("Then each status should get its own series", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("/api/export-word", "POST", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("/api/export-word", "POST", "422")), ShouldEqual, 1)
			})
		})

		Convey("When scraping the handler", func() {
			manager.RecordExport(OutcomeSuccess, time.Millisecond, 100)
			rec := httptest.NewRecorder()
			manager.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then it should expose the service metrics", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `moralreport_exports_total{outcome="success"} 1`)
			})
		})
	})
}
