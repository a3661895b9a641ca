package report_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/lagona162-arch/resvalue/internal/report"
)

var _ = Describe("Report", func() {
	var r *report.Report

	BeforeEach(func() {
		r = report.New()
	})

	Describe("New", func() {
		It("should start empty", func() {
			snap := r.Snapshot()
			Expect(snap.Resolved).To(BeEmpty())
			Expect(snap.Unresolved).To(BeEmpty())
			Expect(snap.Sources).To(BeEmpty())
			Expect(r.Ok()).To(BeTrue())
		})
	})

	Describe("RecordLookup", func() {
		It("should count lookups and hits per source", func() {
			r.RecordLookup("dotenv(.env)", false)
			r.RecordLookup("flags", true)
			r.RecordLookup("dotenv(.env)", true)

			snap := r.Snapshot()
			Expect(snap.Sources["dotenv(.env)"]).To(Equal(report.SourceStats{Lookups: 2, Hits: 1}))
			Expect(snap.Sources["flags"]).To(Equal(report.SourceStats{Lookups: 1, Hits: 1}))
		})

		It("should keep the order sources were first consulted in", func() {
			r.RecordLookup("b", false)
			r.RecordLookup("a", false)
			r.RecordLookup("b", false)

			Expect(r.Snapshot().Order).To(Equal([]string{"b", "a"}))
		})
	})

	Describe("RecordResolved and RecordUnresolved", func() {
		It("should track the outcome per key", func() {
			r.RecordResolved("GOOGLE_MAPS_API_KEY", "flags")
			r.RecordUnresolved("Z_KEY")
			r.RecordUnresolved("A_KEY")

			snap := r.Snapshot()
			Expect(snap.Resolved).To(HaveKeyWithValue("GOOGLE_MAPS_API_KEY", "flags"))
			Expect(snap.Unresolved).To(Equal([]string{"A_KEY", "Z_KEY"}))
			Expect(r.Ok()).To(BeFalse())
		})
	})

	Describe("Snapshot", func() {
		It("should return an independent copy", func() {
			r.RecordResolved("K", "flags")
			snap := r.Snapshot()
			snap.Resolved["K"] = "tampered"

			Expect(r.Snapshot().Resolved["K"]).To(Equal("flags"))
		})
	})

	Describe("Duration", func() {
		It("should render as a readable duration in YAML", func() {
			snap := r.Snapshot()
			_, err := time.ParseDuration(snap.Duration)
			Expect(err).NotTo(HaveOccurred())

			out, err := yaml.Marshal(snap)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(MatchRegexp(`(?m)^duration: [0-9.]+[a-zµ]*s$`))
		})
	})

	Describe("Concurrent access", func() {
		It("should be safe for concurrent recording", func() {
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					r.RecordLookup("flags", true)
				}()
				go func() {
					defer wg.Done()
					_ = r.Snapshot()
				}()
			}
			wg.Wait()

			Expect(r.Snapshot().Sources["flags"].Lookups).To(Equal(int64(50)))
		})
	})
})
