package events_test

import (
	"testing"

	"github.com/ardanlabs/explorer/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out events by topic.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen subscribers register for topics.", testID)
		{
			evts := events.New()

			all := evts.Acquire("all")
			blocks := evts.Acquire("blocks", "blocks")

			if again := evts.Acquire("all"); again != all {
				t.Fatalf("\t%s\tTest %d:\tShould get back the same channel for the same id.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get back the same channel for the same id.", success, testID)

			evts.Send("blocks", "b1")
			evts.Send("milestones", "m1")

			if len(all) != 2 || len(blocks) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould filter by topic: all %d blocks %d", failed, testID, len(all), len(blocks))
			}
			if msg := <-blocks; msg != "b1" {
				t.Fatalf("\t%s\tTest %d:\tShould receive the block message: %s", failed, testID, msg)
			}
			t.Logf("\t%s\tTest %d:\tShould filter by topic.", success, testID)

			if err := evts.Release("blocks"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould release the subscriber: %v", failed, testID, err)
			}
			if _, open := <-blocks; open {
				t.Fatalf("\t%s\tTest %d:\tShould close the released channel.", failed, testID)
			}
			if err := evts.Release("blocks"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould not release an unknown id.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould release subscribers.", success, testID)

			evts.Shutdown()
			if evts.Count() != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould remove every subscriber on shutdown.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould remove every subscriber on shutdown.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a subscriber is not reading.", testID)
		{
			evts := events.New()
			ch := evts.Acquire("slow")

			for i := 0; i < 500; i++ {
				evts.Send("blocks", "msg")
			}

			if len(ch) != cap(ch) {
				t.Fatalf("\t%s\tTest %d:\tShould drop messages instead of blocking: %d", failed, testID, len(ch))
			}
			t.Logf("\t%s\tTest %d:\tShould drop messages instead of blocking.", success, testID)
		}
	}
}
