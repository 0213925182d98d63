package historystorage_test

import (
	"context"
	"time"

	"github.com/cockroachdb/errors/markers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/shared/history/entity"
	"github.com/veedubyou/split-studio/src/shared/history/storage"
	. "github.com/veedubyou/split-studio/src/shared/testing"
)

var _ = Describe("DB", func() {
	var (
		historyDB historystorage.DB
		ctx       context.Context
		createdAt time.Time
	)

	makeRecord := func(id string, sessionID string, offset time.Duration) historyentity.Record {
		return historyentity.Record{
			ID:        id,
			SessionID: sessionID,
			FileName:  id + ".mp3",
			MediaType: "audio/mpeg",
			Vocals:    "/out/" + id + "/vocals.wav",
			Karaoke:   "/out/" + id + "/karaoke.wav",
			CreatedAt: createdAt.Add(offset),
		}
	}

	BeforeEach(func() {
		ResetDB(db)
		historyDB = historystorage.NewDB(db)
		ctx = context.Background()
		createdAt = time.Date(2022, 8, 14, 10, 30, 0, 0, time.UTC)
	})

	It("lists a session's records oldest first", func() {
		second := makeRecord("second", "session-a", time.Minute)
		first := makeRecord("first", "session-a", 0)
		other := makeRecord("other", "session-b", 0)

		Expect(historyDB.PutRecord(ctx, second)).To(Succeed())
		Expect(historyDB.PutRecord(ctx, first)).To(Succeed())
		Expect(historyDB.PutRecord(ctx, other)).To(Succeed())

		records := ExpectSuccess(historyDB.ListRecords(ctx, "session-a"))
		Expect(records).To(HaveLen(2))
		Expect(records[0].ID).To(Equal("first"))
		Expect(records[1].ID).To(Equal("second"))
		Expect(records[0].Vocals).To(Equal("/out/first/vocals.wav"))
		Expect(records[0].CreatedAt.Equal(first.CreatedAt)).To(BeTrue())
	})

	It("lists nothing for an unknown session", func() {
		records := ExpectSuccess(historyDB.ListRecords(ctx, "nobody"))
		Expect(records).To(BeEmpty())
	})

	It("refuses a record without an ID", func() {
		err := historyDB.PutRecord(ctx, makeRecord("", "session-a", 0))
		Expect(markers.Is(err, historystorage.IDEmptyMark)).To(BeTrue())
	})
})
