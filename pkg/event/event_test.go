package event_test

import (
	"sync"
	"testing"

	"github.com/fennwick/brasserie/pkg/event"
)

func TestFireReachesAllListeners(t *testing.T) {
	t.Cleanup(event.Flush)

	var got []string
	event.Listen("order.created", func(payload interface{}) {
		got = append(got, "a:"+payload.(string))
	})
	event.Listen("order.created", func(payload interface{}) {
		got = append(got, "b:"+payload.(string))
	})

	event.Fire("order.created", "42")

	if len(got) != 2 || got[0] != "a:42" || got[1] != "b:42" {
		t.Errorf("unexpected deliveries: %v", got)
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	t.Cleanup(event.Flush)
	event.Fire("never.registered", nil)
}

func TestFireAsync(t *testing.T) {
	t.Cleanup(event.Flush)

	var wg sync.WaitGroup
	wg.Add(2)
	event.Listen("order.deleted", func(interface{}) { wg.Done() })
	event.Listen("order.deleted", func(interface{}) { wg.Done() })

	event.FireAsync("order.deleted", nil)
	wg.Wait()
}
