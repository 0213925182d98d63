package playback_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/shared/playback"
)

var _ = Describe("FormatTime", func() {
	DescribeTable("renders minutes and zero padded seconds",
		func(seconds float64, expected string) {
			Expect(playback.FormatTime(seconds)).To(Equal(expected))
		},
		Entry("zero", 0.0, "0:00"),
		Entry("just over a minute", 65.0, "1:05"),
		Entry("fractional seconds are floored", 59.99, "0:59"),
		Entry("exactly ten minutes", 600.0, "10:00"),
		Entry("over an hour stays in minutes", 3725.0, "62:05"),
		Entry("unknown", math.NaN(), "0:00"),
		Entry("infinite", math.Inf(1), "0:00"),
		Entry("negative", -3.0, "0:00"),
	)
})

var _ = Describe("DownloadFilename", func() {
	It("lowercases and underscores the title", func() {
		Expect(playback.DownloadFilename("Vocals Only")).To(Equal("vocals_only.wav"))
		Expect(playback.DownloadFilename("Instrumental")).To(Equal("instrumental.wav"))
	})
})
