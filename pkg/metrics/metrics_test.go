package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors are registered under the namespace", func() {
				So(m, ShouldNotBeNil)
				m.riskAssessments.WithLabelValues("High").Inc()
				mfs, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(mfs))
				for _, mf := range mfs {
					names = append(names, mf.GetName())
				}
				So(names, ShouldContain, "test_unit_risk_assessments_total")
				So(names, ShouldContain, "test_unit_risk_score")
			})
		})

		Convey("When empty options are passed", func() {
			m := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "stride")
				So(m.latencyBuckets, ShouldResemble, defaultLatencyBuckets)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording narrative outcomes", func() {
			before := testutil.ToFloat64(globalManager.narrativeRequests.WithLabelValues("diet", OutcomeFallback))
			RecordNarrative("diet", OutcomeFallback, 12)
			RecordNarrative("diet", OutcomeFallback, 8)

			Convey("Then the fallback counter advances", func() {
				after := testutil.ToFloat64(globalManager.narrativeRequests.WithLabelValues("diet", OutcomeFallback))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording risk assessments", func() {
			before := testutil.ToFloat64(globalManager.riskAssessments.WithLabelValues("Low"))
			RecordRiskAssessment("Low", 0.3)
			RecordRiskInsufficientData()

			Convey("Then the level counter advances", func() {
				So(testutil.ToFloat64(globalManager.riskAssessments.WithLabelValues("Low"))-before, ShouldEqual, 1)
			})
		})

		Convey("When updating gauges", func() {
			UpdateQueueSize(3)
			UpdateQueueCapacity(64)
			UpdateWorkerCount(4)
			UpdateCritiqueStored(7)

			Convey("Then gauges reflect the last value", func() {
				So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 64)
				So(testutil.ToFloat64(globalManager.workerCount), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.critiqueStored), ShouldEqual, 7)
			})
		})

		Convey("When the remaining helpers are called", func() {
			So(func() {
				RecordProviderFetch("profile", OutcomeOK, 3)
				RecordView("dashboard", OutcomeOK, 40)
				RecordCritiqueJob("submitted")
				RecordQueueEnqueueError("queue_full")
				RecordWorkerProcessingLatency(120)
				RecordHTTPRequest("dashboard", "GET", "200", 41)
				RecordHTTPError("injury", "insufficient_data")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)

			Convey("Then they appear in the gathered families", func() {
				fams, err := Families()
				So(err, ShouldBeNil)
				So(fams, ShouldContainKey, "stride_reporting_provider_fetch_total")
				So(fams, ShouldContainKey, "stride_reporting_http_errors_total")
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
