package intake_test

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/shared/intake"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

var _ = Describe("Intake", func() {
	var (
		submitted []splitentity.UploadedFile
		submitErr error
		disabled  bool
		in        intake.Intake

		mp3   splitentity.UploadedFile
		wav   splitentity.UploadedFile
		image splitentity.UploadedFile
	)

	BeforeEach(func() {
		submitted = nil
		submitErr = nil
		disabled = false

		mp3 = splitentity.UploadedFile{Name: "song.mp3", MediaType: "audio/mpeg", Content: []byte("mp3")}
		wav = splitentity.UploadedFile{Name: "song.wav", MediaType: "audio/wav", Content: []byte("wav")}
		image = splitentity.UploadedFile{Name: "cover.png", MediaType: "image/png", Content: []byte("png")}

		in = intake.New(func(file splitentity.UploadedFile) error {
			if submitErr != nil {
				return submitErr
			}

			submitted = append(submitted, file)
			return nil
		}, func() bool {
			return disabled
		})
	})

	Describe("Drop", func() {
		It("submits a dropped audio file", func() {
			outcome, err := in.Drop([]splitentity.UploadedFile{mp3})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Submitted))
			Expect(submitted).To(Equal([]splitentity.UploadedFile{mp3}))
		})

		It("only uses the first file", func() {
			outcome, err := in.Drop([]splitentity.UploadedFile{wav, mp3})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Submitted))
			Expect(submitted).To(Equal([]splitentity.UploadedFile{wav}))
		})

		It("silently ignores a file that isn't audio", func() {
			outcome, err := in.Drop([]splitentity.UploadedFile{image, mp3})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Rejected))
			Expect(submitted).To(BeEmpty())
		})

		It("ignores a file without a declared type", func() {
			outcome, err := in.Drop([]splitentity.UploadedFile{{Name: "mystery"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Rejected))
			Expect(submitted).To(BeEmpty())
		})

		It("does nothing for an empty drop", func() {
			outcome, err := in.Drop(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.NoFile))
			Expect(submitted).To(BeEmpty())
		})
	})

	Describe("Pick", func() {
		It("does not filter by type", func() {
			outcome, err := in.Pick([]splitentity.UploadedFile{image})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Submitted))
			Expect(submitted).To(Equal([]splitentity.UploadedFile{image}))
		})

		It("only uses the first file", func() {
			_, err := in.Pick([]splitentity.UploadedFile{mp3, wav})
			Expect(err).NotTo(HaveOccurred())
			Expect(submitted).To(Equal([]splitentity.UploadedFile{mp3}))
		})

		It("does not enforce the advisory size", func() {
			large := splitentity.UploadedFile{
				Name:      "long.wav",
				MediaType: "audio/wav",
				Content:   make([]byte, intake.AdvisoryMaxSize+1),
			}

			outcome, err := in.Pick([]splitentity.UploadedFile{large})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Submitted))
			Expect(submitted).To(HaveLen(1))
		})
	})

	Describe("While disabled", func() {
		BeforeEach(func() {
			disabled = true
		})

		It("ignores drops", func() {
			outcome, err := in.Drop([]splitentity.UploadedFile{mp3})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Disabled))
			Expect(submitted).To(BeEmpty())
		})

		It("ignores picks", func() {
			outcome, err := in.Pick([]splitentity.UploadedFile{mp3})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(intake.Disabled))
			Expect(submitted).To(BeEmpty())
		})
	})

	Describe("When the callback refuses the file", func() {
		BeforeEach(func() {
			submitErr = errors.New("busy")
		})

		It("returns the error", func() {
			_, err := in.Submit(mp3)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, submitErr)).To(BeTrue())
		})
	})

	It("exposes the picker filter", func() {
		Expect(intake.PickerAccept).To(Equal("audio/*"))
	})
})
