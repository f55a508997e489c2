package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"dilek.link/configs/configslog"

	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

type fakeViewer struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
}

func (v *fakeViewer) WriteMessage(_ int, data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.fail {
		return errors.New("bağlantı koptu")
	}
	v.messages = append(v.messages, data)
	return nil
}

func (v *fakeViewer) received() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.messages)
}

// blockedViewer release kapanana kadar ilk yazmada asılı kalır; dolu TCP
// tamponlu bir istemciyi taklit eder.
type blockedViewer struct {
	release chan struct{}
}

func (v *blockedViewer) WriteMessage(_ int, _ []byte) error {
	<-v.release
	return nil
}

func TestChannelForWishlist(t *testing.T) {
	require.Equal(t, "wishlist:abc123", ChannelForWishlist("abc123"))
}

func TestPublishReachesOnlyOwnChannel(t *testing.T) {
	configslog.InitLogger()
	hub := NewHub()
	a := &fakeViewer{}
	b := &fakeViewer{}

	hub.Subscribe("wishlist:aaa", a)
	hub.Subscribe("wishlist:bbb", b)

	hub.Publish("wishlist:aaa", Event{Type: "reservation", ItemID: 42})

	require.Eventually(t, func() bool { return a.received() == 1 }, waitFor, tick)
	require.Equal(t, 0, b.received())

	a.mu.Lock()
	raw := a.messages[0]
	a.mu.Unlock()
	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &ev))
	require.Equal(t, "reservation", ev["type"])
	require.EqualValues(t, 42, ev["itemId"])
}

func TestSubscribeIsIdempotent(t *testing.T) {
	configslog.InitLogger()
	hub := NewHub()
	v := &fakeViewer{}

	hub.Subscribe("wishlist:aaa", v)
	hub.Subscribe("wishlist:aaa", v)
	require.Equal(t, 1, hub.ViewerCount("wishlist:aaa"))

	hub.Publish("wishlist:aaa", Event{Type: "contribution", ItemID: 1})
	require.Eventually(t, func() bool { return v.received() == 1 }, waitFor, tick)
}

func TestUnsubscribePrunesEmptyChannel(t *testing.T) {
	configslog.InitLogger()
	hub := NewHub()
	v := &fakeViewer{}

	hub.Subscribe("wishlist:aaa", v)
	hub.Unsubscribe("wishlist:aaa", v)
	require.Equal(t, 0, hub.ViewerCount("wishlist:aaa"))

	// Kayıtsız izleyiciye yayın gitmez, panik de olmaz.
	hub.Publish("wishlist:aaa", Event{Type: "unreserve", ItemID: 1})
	require.Equal(t, 0, v.received())
}

func TestPublishDropsFailingViewers(t *testing.T) {
	configslog.InitLogger()
	hub := NewHub()
	ok := &fakeViewer{}
	broken := &fakeViewer{fail: true}

	hub.Subscribe("wishlist:aaa", ok)
	hub.Subscribe("wishlist:aaa", broken)

	hub.Publish("wishlist:aaa", Event{Type: "reservation", ItemID: 1})

	// Bozuk izleyici düşürüldü, sağlıklı olan yayın almaya devam ediyor.
	require.Eventually(t, func() bool { return hub.ViewerCount("wishlist:aaa") == 1 }, waitFor, tick)
	hub.Publish("wishlist:aaa", Event{Type: "unreserve", ItemID: 1})
	require.Eventually(t, func() bool { return ok.received() == 2 }, waitFor, tick)
}

// Yazması asılı kalan izleyici yalnızca kendi kuyruğunu doldurur: kuyruk
// taşınca düşürülür, yayınlar ve diğer izleyiciler hiç bekletilmez.
func TestPublishNeverBlocksOnStalledViewer(t *testing.T) {
	configslog.InitLogger()
	hub := NewHub()
	stalled := &blockedViewer{release: make(chan struct{})}
	healthy := &fakeViewer{}

	hub.Subscribe("wishlist:aaa", stalled)
	hub.Subscribe("wishlist:aaa", healthy)

	// Bir olay pump'ta asılı, sendQueueSize olay kuyrukta, fazlası taşar.
	published := make(chan struct{})
	go func() {
		for i := 0; i < sendQueueSize+2; i++ {
			hub.Publish("wishlist:aaa", Event{Type: "contribution", ItemID: uint(i)})
		}
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(waitFor):
		t.Fatal("Publish takılı izleyici yüzünden bloklandı")
	}

	require.Eventually(t, func() bool { return hub.ViewerCount("wishlist:aaa") == 1 }, waitFor, tick)
	require.Eventually(t, func() bool { return healthy.received() == sendQueueSize+2 }, waitFor, tick)

	close(stalled.release)
}

func TestPublishConcurrent(t *testing.T) {
	configslog.InitLogger()
	hub := NewHub()
	v := &fakeViewer{}
	hub.Subscribe("wishlist:aaa", v)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			hub.Publish("wishlist:aaa", Event{Type: "contribution", ItemID: uint(n)})
		}(i)
	}
	wg.Wait()

	require.Eventually(t, func() bool { return v.received() == 10 }, waitFor, tick)
}
