package jsonlib_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/shared/lib/jsonlib"
	. "github.com/veedubyou/split-studio/src/shared/testing"
)

type record struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

var _ = Describe("Convert", func() {
	createdAt := time.Date(2022, 8, 14, 10, 30, 0, 0, time.UTC)

	It("uses the json field names as map keys", func() {
		m := ExpectSuccess(jsonlib.StructToMap(record{
			ID:        "record-id",
			FileName:  "song.mp3",
			CreatedAt: createdAt,
		}))

		Expect(m).To(Equal(map[string]any{
			"id":         "record-id",
			"file_name":  "song.mp3",
			"created_at": "2022-08-14T10:30:00Z",
		}))
	})

	It("reads stored maps back into structs", func() {
		r := ExpectSuccess(jsonlib.MapToStruct[record](map[string]any{
			"id":         "record-id",
			"file_name":  "song.mp3",
			"created_at": "2022-08-14T10:30:00Z",
			"unknown":    "ignored",
		}))

		Expect(r.ID).To(Equal("record-id"))
		Expect(r.FileName).To(Equal("song.mp3"))
		Expect(r.CreatedAt.Equal(createdAt)).To(BeTrue())
	})

	It("fails when a field has the wrong type", func() {
		_, err := jsonlib.MapToStruct[record](map[string]any{
			"id": 12,
		})
		Expect(err).To(HaveOccurred())
	})
})
