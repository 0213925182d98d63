package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

var _ = Describe("Split", func() {
	var (
		backend    *httptest.Server
		failWith   string
		output     *bytes.Buffer
		workingDir string
	)

	BeforeEach(func() {
		failWith = ""
		output = &bytes.Buffer{}

		var err error
		workingDir, err = os.MkdirTemp("", "studio-split")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, workingDir)

		mux := http.NewServeMux()
		mux.HandleFunc("/split", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if failWith != "" {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": failWith})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"vocals":  "/out/song_vocals.wav",
				"karaoke": "/out/song_karaoke.wav",
			})
		})
		mux.HandleFunc("/out/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("RIFF " + r.URL.Path))
		})
		backend = httptest.NewServer(mux)
		DeferCleanup(backend.Close)

		previousOrigin, previousSaveDir := backendOrigin, saveDir
		backendOrigin = backend.URL
		saveDir = ""
		DeferCleanup(func() {
			backendOrigin, saveDir = previousOrigin, previousSaveDir
		})
	})

	audioFile := func() splitentity.UploadedFile {
		return splitentity.UploadedFile{
			Name:      "song.mp3",
			MediaType: "audio/mpeg",
			Content:   []byte("ID3"),
		}
	}

	Describe("readUpload", func() {
		It("takes the media type from the extension", func() {
			path := filepath.Join(workingDir, "song.wav")
			wave := []byte("RIFF\x00\x00\x00\x00WAVEfmt ")
			Expect(os.WriteFile(path, wave, 0o644)).To(Succeed())

			file, err := readUpload(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Name).To(Equal("song.wav"))
			Expect(file.MediaType).To(HavePrefix("audio/"))
			Expect(file.Content).To(Equal(wave))
		})

		It("fails for a missing file", func() {
			_, err := readUpload(filepath.Join(workingDir, "missing.mp3"))
			Expect(err).To(HaveOccurred())
		})
	})

	It("prints both stem urls", func() {
		Expect(runSplit(context.Background(), output, audioFile())).To(Succeed())

		Expect(output.String()).To(ContainSubstring("splitting song.mp3..."))
		Expect(output.String()).To(ContainSubstring(backend.URL + "/out/song_vocals.wav"))
		Expect(output.String()).To(ContainSubstring(backend.URL + "/out/song_karaoke.wav"))
	})

	It("saves both stems into the save dir", func() {
		saveDir = filepath.Join(workingDir, "stems")
		Expect(runSplit(context.Background(), output, audioFile())).To(Succeed())

		vocals, err := os.ReadFile(filepath.Join(saveDir, "vocals_only.wav"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(vocals)).To(Equal("RIFF /out/song_vocals.wav"))

		instrumental, err := os.ReadFile(filepath.Join(saveDir, "instrumental.wav"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(instrumental)).To(Equal("RIFF /out/song_karaoke.wav"))
	})

	It("returns the backend's message when the split fails", func() {
		failWith = "decode failed"

		err := runSplit(context.Background(), output, audioFile())
		Expect(err).To(MatchError("split failed: decode failed"))
	})
})
